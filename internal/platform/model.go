// Package platform holds the content model the host application consumes.
// Values are built fresh for every operation and never shared.
package platform

type ID struct {
	Platform  string `yaml:"platform"`
	Value     string `yaml:"value"`
	PluginID  string `yaml:"plugin_id,omitempty"`
	ClaimType int    `yaml:"claim_type"`
}

type AuthorLink struct {
	ID          ID     `yaml:"id"`
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Thumbnail   string `yaml:"thumbnail,omitempty"`
	Subscribers int64  `yaml:"subscribers,omitempty"`
}

type Channel struct {
	ID              ID                `yaml:"id"`
	Name            string            `yaml:"name"`
	Thumbnail       string            `yaml:"thumbnail,omitempty"`
	Banner          string            `yaml:"banner,omitempty"`
	Subscribers     int64             `yaml:"subscribers,omitempty"`
	Description     string            `yaml:"description,omitempty"`
	URL             string            `yaml:"url"`
	URLAlternatives []string          `yaml:"url_alternatives,omitempty"`
	Links           map[string]string `yaml:"links,omitempty"`
}

// Content is a feed entry. Chapters are emitted either as *Post or *WebItem
// depending on the configured chapter shape.
type Content interface {
	ContentID() ID
	ContentName() string
	Published() int64
	isContent()
}

type Post struct {
	ID          ID         `yaml:"id"`
	Author      AuthorLink `yaml:"author"`
	Name        string     `yaml:"name"`
	Datetime    int64      `yaml:"datetime"`
	URL         string     `yaml:"url"`
	Description string     `yaml:"description,omitempty"`
}

func (p *Post) ContentID() ID       { return p.ID }
func (p *Post) ContentName() string { return p.Name }
func (p *Post) Published() int64    { return p.Datetime }
func (*Post) isContent()            {}

type WebItem struct {
	ID       ID         `yaml:"id"`
	Author   AuthorLink `yaml:"author"`
	Name     string     `yaml:"name"`
	Datetime int64      `yaml:"datetime"`
	URL      string     `yaml:"url"`
}

func (w *WebItem) ContentID() ID       { return w.ID }
func (w *WebItem) ContentName() string { return w.Name }
func (w *WebItem) Published() int64    { return w.Datetime }
func (*WebItem) isContent()            {}

type TextType int

const (
	TextRaw TextType = iota
	TextHTML
	TextMarkdown
)

type PostDetails struct {
	Post     `yaml:",inline"`
	Content  string   `yaml:"content"`
	TextType TextType `yaml:"text_type"`
	Images   []string `yaml:"images,omitempty"`
}

type Comment struct {
	ContextURL string     `yaml:"context_url"`
	Author     AuthorLink `yaml:"author"`
	Message    string     `yaml:"message"`
	Datetime   int64      `yaml:"datetime"`
}

// Pager is a single page of results. Continuation is passed back verbatim
// by the host on the next call; an empty value means "first page".
type Pager[T any] struct {
	Items        []T               `yaml:"items"`
	HasMore      bool              `yaml:"has_more"`
	Continuation string            `yaml:"continuation,omitempty"`
	Context      map[string]string `yaml:"context,omitempty"`
}

type (
	ContentPager = Pager[Content]
	ChannelPager = Pager[Channel]
	CommentPager = Pager[Comment]
)

func EmptyPager[T any](continuation string, ctx map[string]string) *Pager[T] {
	return &Pager[T]{Items: []T{}, Continuation: continuation, Context: ctx}
}

const (
	FeedMixed          = "MIXED"
	OrderChronological = "CHRONOLOGICAL"
	OrderOldest        = "oldest"
)

type Capabilities struct {
	Types   []string `yaml:"types"`
	Sorts   []string `yaml:"sorts"`
	Filters []string `yaml:"filters"`
}
