package auth

// Common interface for the two caller kinds: editor sessions carrying a
// JWT and ingestion clients carrying an API key.
type UserClaims interface {
	UserID() string
	Role() string
	Source() string
	CanEdit() bool
}

// EditorClaims identifies a league admin editing results.
type EditorClaims struct {
	EditorUUID string
	RoleValue  string
}

func (c *EditorClaims) UserID() string { return c.EditorUUID }
func (c *EditorClaims) Role() string   { return c.RoleValue }
func (c *EditorClaims) Source() string { return "JWT" }
func (c *EditorClaims) CanEdit() bool {
	return c.RoleValue == "admin" || c.RoleValue == "steward"
}

// APIKeyClaims identifies an ingestion client (telemetry collector,
// file importer). Ingest keys may import but never edit.
type APIKeyClaims struct {
	KeyID   string
	KeyName string
}

func (c *APIKeyClaims) UserID() string { return c.KeyID }
func (c *APIKeyClaims) Role() string   { return "ingest" }
func (c *APIKeyClaims) Source() string { return "API_KEY" }
func (c *APIKeyClaims) CanEdit() bool  { return false }
