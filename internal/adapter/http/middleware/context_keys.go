package middleware

// ContextKey is the type of request context keys set by this package.
type ContextKey string

const (
	// AdminSubjectCtxKey holds the subject of a verified admin token.
	AdminSubjectCtxKey = ContextKey("admin_subject")
	// AdminRoleCtxKey holds the role claim of a verified admin token.
	AdminRoleCtxKey = ContextKey("admin_role")
)
