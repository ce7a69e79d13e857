// Package scaffold provides the embedded starter site written by
// "pagebuilder new".
package scaffold

import "embed"

// Templates contains the starter site under templates/. Files with a .tmpl
// suffix use Go text/template syntax; all others are copied as is.
//
//go:embed all:templates
var Templates embed.FS
