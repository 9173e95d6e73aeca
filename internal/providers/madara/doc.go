// Package madara implements providers.Source for sites running the WordPress
// Madara manga theme, mirrored across a primary and a fallback domain.
//
// Every operation is one fetch (two for chapter listings) followed by
// extraction and normalization. Listing pages tolerate malformed entries:
// a broken item is logged and dropped while the rest of the page is kept.
// Page-level failures are returned as *sourceerr.Error.
package madara
