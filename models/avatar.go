package models

import "io"

// MaxAvatarSize is the largest accepted avatar upload, in bytes.
const MaxAvatarSize = 5 << 20

// AvatarUpload is an image received from the client. Size is the length
// declared by the multipart header.
type AvatarUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}
