package filestorage

import "mime/multipart"

// FileStorage defines the interface for binary asset storage. Implementations
// return a publicly retrievable URL for each stored file.
type FileStorage interface {
	// SaveFile stores a file in the root of the storage area.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath stores a file under the given subdirectory.
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a previously stored file. Deleting a missing file
	// is not an error.
	DeleteFile(fileURL string) error
}
