package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Project lifecycle states
const (
	ProjectActive   = "active"
	ProjectPaused   = "paused"
	ProjectArchived = "archived"
)

// Publication lifecycle states
const (
	PublicationActive  = "active"
	PublicationPaused  = "paused"
	PublicationClosed  = "closed"
	PublicationDeleted = "deleted"
)

// Publication kinds
const (
	KindOffer        = "offer"
	KindSearch       = "search"
	KindAnnouncement = "announcement"
)

// Collaboration request states
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Collaborator states
const (
	CollaboratorActive   = "active"
	CollaboratorInactive = "inactive"
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
