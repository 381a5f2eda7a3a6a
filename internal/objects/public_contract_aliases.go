package objects

import blogobjects "github.com/goliatone/go-blog/objects"

// Type aliases keep the public contract in the objects package while the
// implementation lives here.
type (
	StoredObject  = blogobjects.StoredObject
	UploadRequest = blogobjects.UploadRequest
	NotFoundError = blogobjects.NotFoundError
)

var (
	ErrEmptyObject      = blogobjects.ErrEmptyObject
	ErrKeyRequired      = blogobjects.ErrKeyRequired
	ErrSignatureInvalid = blogobjects.ErrSignatureInvalid
	ErrURLExpired       = blogobjects.ErrURLExpired
)
