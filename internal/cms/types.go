package cms

import "encoding/json"

// Author is the post author object embedded in post responses.
type Author struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Slug         string `json:"slug"`
	ProfileImage string `json:"profile_image"`
}

type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category is returned both as a bare reference on posts and, with
// RecentPosts populated, from the category retrieve endpoint.
type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	RecentPosts []Post `json:"recent_posts"`
}

type Post struct {
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Body             string     `json:"body"`
	Summary          string     `json:"summary"`
	SEOTitle         string     `json:"seo_title"`
	MetaDescription  string     `json:"meta_description"`
	FeaturedImage    string     `json:"featured_image"`
	FeaturedImageAlt string     `json:"featured_image_alt"`
	Status           string     `json:"status"`
	Published        string     `json:"published"`
	Author           Author     `json:"author"`
	Categories       []Category `json:"categories"`
	Tags             []Tag      `json:"tags"`
	URL              string     `json:"url"`
}

// ListMeta carries the pagination indicators of list responses. NextPage and
// PreviousPage are null when no further page exists in that direction.
type ListMeta struct {
	NextPage     *int `json:"next_page"`
	PreviousPage *int `json:"previous_page"`
	Count        int  `json:"count"`
}

type PostList struct {
	Meta ListMeta `json:"meta"`
	Data []Post   `json:"data"`
}

// Page is a CMS page of an arbitrary page type; Fields holds the
// type-specific field set undecoded.
type Page struct {
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Published string          `json:"published"`
	PageType  string          `json:"page_type"`
	Fields    json.RawMessage `json:"fields"`
}
