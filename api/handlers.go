package api

import (
	"time"

	"github.com/rpupo63/blog-site/database"
	"github.com/rpupo63/blog-site/views"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, mediaURL string, pages pages, startupTime time.Time) *routeHandlers {
	assembler := views.NewAssembler(db.PostRepo(), db.TagRepo(), db.CommentRepo(), views.Serializer{MediaURL: mediaURL})

	return &routeHandlers{
		pageHandler:   newPageHandler(assembler, pages),
		healthHandler: newHealthHandler(db, startupTime),
	}
}
