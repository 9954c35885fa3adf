package redis

const (
	// KeyPrefixNode is the prefix for node documents
	KeyPrefixNode = "myshortcuts:node:"
	// KeyPrefixChildren is the prefix for ordered child id lists
	KeyPrefixChildren = "myshortcuts:children:"
	// KeyPrefixTitle is the prefix for the title -> ids index
	KeyPrefixTitle = "myshortcuts:title:"

	rootSegment = "root"
)

// NodeKey returns the Redis key for a node
func NodeKey(id string) string {
	return KeyPrefixNode + id
}

// ChildrenKey returns the list key holding the children of parentID.
// Root-level nodes live under "root".
func ChildrenKey(parentID string) string {
	if parentID == "" {
		return KeyPrefixChildren + rootSegment
	}
	return KeyPrefixChildren + parentID
}

// TitleKey returns the set key indexing nodes by exact title
func TitleKey(title string) string {
	return KeyPrefixTitle + title
}
