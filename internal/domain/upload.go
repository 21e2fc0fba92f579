package domain

// ImageSource distinguishes where an uploaded photo came from. Both
// variants carry the same name+bytes shape and are treated identically
// once they reach the service layer.
type ImageSource string

const (
	ImageSourceFileUpload    ImageSource = "FILE_UPLOAD"
	ImageSourceCapturedFrame ImageSource = "CAPTURED_FRAME"
)

// UploadableImage is the unified photo payload: a user-selected file or a
// webcam-captured frame.
type UploadableImage struct {
	Filename    string
	ContentType string
	Bytes       []byte
	Source      ImageSource
}
