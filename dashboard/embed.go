// Package dashboard provides the embedded web UI assets for PWSBoard.
//
// This package uses Go's embed directive to include the dashboard page at
// compile time, enabling single-binary deployment without external asset
// files.
//
// The page is an html/template rendered by the server package at "/".
// Users of the pwsboard library should not need to interact with this
// package directly.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard web UI.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Dashboard page template: layout, dropdowns and the
//	                  client glue that draws figures pushed over SSE
//
//go:embed assets/*
var Assets embed.FS
