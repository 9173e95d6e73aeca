// Package providers declares the operations a content source exposes to
// the host application.
package providers

import (
	"context"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

// Query carries the host's search and listing parameters.
type Query struct {
	Text         string
	Type         string
	Order        string
	Filters      map[string][]string
	Continuation string
}

type Source interface {
	GetHome(ctx context.Context, continuation string) (*platform.ContentPager, error)

	Search(ctx context.Context, q Query) (*platform.ContentPager, error)
	SearchSuggestions(ctx context.Context, query string) ([]string, error)
	SearchCapabilities() platform.Capabilities
	SearchChannels(ctx context.Context, query, continuation string) (*platform.ChannelPager, error)

	IsChannelURL(ref platform.Ref) bool
	GetChannel(ctx context.Context, ref platform.Ref) (*platform.Channel, error)
	ChannelCapabilities() platform.Capabilities
	GetChannelContents(ctx context.Context, ref platform.Ref, q Query) (*platform.ContentPager, error)

	IsContentDetailsURL(ref platform.Ref) bool
	GetContentDetails(ctx context.Context, ref platform.Ref) (*platform.PostDetails, error)

	GetComments(ctx context.Context, ref platform.Ref, continuation string) (*platform.CommentPager, error)
}
