// Package fileutil holds the permission modes used when writing generated
// documents.
package fileutil

import "os"

// ReadableByAll is the file permission mode for generated documents,
// which are published alongside the API they describe.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the mode for output directories created on demand.
const DirReadableByAll os.FileMode = 0o755
