// SPDX-License-Identifier: Apache-2.0

package citation

import (
	"fmt"
	"strings"
	"time"
)

const publicationName = "Academic Review Platform"

// Author is one article author.
type Author struct {
	Name string `json:"name"`
}

// Article holds the fields a formatted reference needs.
type Article struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Authors       []Author   `json:"authors"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Subject       string     `json:"subject"`
}

// FormatReference renders the "cite this article" text for a, linking to the
// article page under baseURL.
func FormatReference(a Article, baseURL string) string {
	authors := "Unknown Authors"
	if len(a.Authors) > 0 {
		names := make([]string, len(a.Authors))
		for i, au := range a.Authors {
			names[i] = au.Name
		}
		authors = strings.Join(names, ", ")
	}
	date := "n.d."
	if a.PublishedDate != nil {
		date = a.PublishedDate.Format("January 2, 2006")
	}
	url := strings.TrimRight(baseURL, "/") + "/article/" + a.ID
	return fmt.Sprintf("%s. (%s). \"%s\". %s. %s. Available at: %s", authors, date, a.Title, publicationName, a.Subject, url)
}
