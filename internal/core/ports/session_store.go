package ports

// SessionStore persists per-project-root user selections for the lifetime of
// the host process. Keys are an open set; unknown keys are stored and
// retrieved verbatim. State for one root is never visible under another.
//
//go:generate mockgen -source=session_store.go -destination=mocks/mock_session_store.go -package=mocks
type SessionStore interface {
	// Get returns the value for key under root. The second return reports
	// whether the key has ever been set.
	Get(root, key string) (string, bool)

	// Set stores value for key under root. Last writer wins.
	Set(root, key, value string)
}
