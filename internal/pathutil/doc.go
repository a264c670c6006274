// Package pathutil provides URL path template utilities for resource tree
// resolution and document output.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// the accumulated template of a resource node while the resolver walks
// factory chains depth-first. Only the segments are stored; the template
// string is materialized on demand.
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("/realms")
//	path.Push("{realm}")
//	path.Push("clients/{id}")
//	tmpl := path.String() // "/realms/{realm}/clients/{id}"
//	path.Pop()
//
// # Templates
//
// [Normalize] cleans a raw path marker (leading slash, duplicate and
// trailing slashes, regex-constrained variables) and reports anything it
// had to repair. [Params] lists template variables in order and
// [RenameParam] rewrites one of them.
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths. It rejects
// symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
package pathutil
