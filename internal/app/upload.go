package app

import "io"

// FileUpload is what the HTTP layer hands to services for multipart files.
type FileUpload struct {
	FileName string
	Size     int64
	Content  io.Reader
}

func (u *FileUpload) present() bool {
	return u != nil && u.FileName != "" && u.Content != nil
}
