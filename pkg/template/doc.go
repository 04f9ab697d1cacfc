// Package template loads email templates and performs flat {{KEY}} substitution.
//
// A template is plain text (usually HTML) with embedded tokens of the form
// {{NAME}}, where NAME is one or more of [A-Za-z0-9_-]. There are no
// conditionals, loops, includes or escaping rules: rendering replaces each
// token whose name has a supplied value and leaves every other token as is.
//
// # Usage
//
//	tmpl, err := template.Load("templates/welcome.html")
//	if err != nil {
//		return err
//	}
//
//	vars := template.Vars{"NAME": "World"}
//	for _, name := range tmpl.Missing(vars) {
//		log.Warn("template variable is missing", slog.String("variable", name))
//	}
//
//	body := tmpl.Render(vars)
//
// # Sources
//
// Templates can be loaded from the local filesystem (Load, Dir), any fs.FS
// (LoadFS, FS) or any value implementing Source, such as an S3 bucket
// wrapped by the storage package.
//
// # Errors
//
//   - ErrLoad: the template could not be loaded
//   - ErrNoSource: no template name or path was given
package template
