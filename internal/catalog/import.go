package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
)

// ImportResult counts what a bulk import did.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ImportShortcuts adds every candidate as a shortcut. Entries without a
// title or URL and titles already in use are skipped; store failures abort.
func (c *Catalog) ImportShortcuts(ctx context.Context, entries []domain.Candidate) (ImportResult, error) {
	var res ImportResult

	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.ensureLocked(ctx)
	if err != nil {
		return res, err
	}

	for _, e := range entries {
		name := strings.TrimSpace(e.Label)
		url := strings.TrimSpace(e.Target)
		if name == "" || url == "" {
			res.Skipped++
			continue
		}

		_, err := c.createUnique(ctx, s.ShortcutsID, name, url)
		if errors.Is(err, ErrDuplicate) {
			c.log.Debug("import: skipping duplicate", logger.String("title", name))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Added++
	}

	return res, nil
}
