package deps

import (
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/index"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/scheduler"
	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time   // for testing, defaults to time.Now
	AllowedHosts      []string           // Host headers allowed to access the server
	AllowedCIDRS      []string           // IPs allowed to access the server
	TrustProxy        bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst    int                // write endpoints: bucket size per client IP
	RateLimitPerMin   int                // write endpoints: refill per minute per client IP
	Store             store.Tree         // Bookmark tree (readiness probe)
	StoreKind         string             // "sqlite" | "redis"
	Catalog           *catalog.Catalog   // Shortcut and search engine folders
	MemoryIndex       *index.MemoryIndex // Latest snapshot the engine ranks against
	Syncer            *scheduler.Syncer  // Refreshes MemoryIndex after writes
	FallbackURL       string             // Web search used when nothing matches (contains %s)
	PublicURL         string             // External base URL for opensearch.xml (empty = derive from request)
	SeedFile          string             // Seed file path (empty = seeding disabled)
	ReloadTrigger     chan struct{}      // Channel to trigger a manual snapshot sync
	SeedReloadTrigger chan struct{}      // Channel to trigger a seed reload (nil if seeding disabled)
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
