package middleware

// ClientIDCtx is the gin context key under which the auth middleware stores
// the authenticated user's id for downstream handlers.
const ClientIDCtx = "client_id"
