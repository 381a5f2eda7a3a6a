// Package http provides the HTTP adapter for the blog services.
//
// Routes mount at the configured base path (default "/"):
//   - Feeds: /feed, /feed/{ref}, /tag
//   - Comments: /comment, /comment/{id}
//   - Storage: /storage, /storage/generate-presigned-url
//   - Accounts: /user/github, /user/github/callback, /user/profile
//   - Syndication: /rss, /sitemap.xml, /robots.txt
//
// Host applications register the handlers on their own mux.
package http
