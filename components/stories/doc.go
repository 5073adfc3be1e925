// Package stories serves the blog listing, category, archive and detail
// pages and publishes them as a named route table. Views expose extension
// points (query filters and context hooks) so a theme can refine a listing
// without re-implementing pagination or rendering.
package stories
