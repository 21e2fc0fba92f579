package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/api/dto"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/service"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

// photoFieldName is the multipart field carrying the image, whether it
// came from a file input or a webcam capture.
const photoFieldName = "staffPicture"

// capturedFrameFilename is the name browsers assign to webcam captures.
const capturedFrameFilename = "webcam_capture.jpg"

var validate = validator.New()

// StaffHandler exposes the staff record endpoints.
type StaffHandler struct {
	staffService *service.StaffService
	maxBytes     int64
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService, maxBytes int64) *StaffHandler {
	return &StaffHandler{staffService: staffService, maxBytes: maxBytes}
}

// Create handles POST /api/staff (public intake).
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid form payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidationError(validationMessage(err), nil)
	}

	photo, err := h.readPhoto(c)
	if err != nil {
		return err
	}

	record, err := h.staffService.CreateStaffRecord(c.UserContext(), service.CreateStaffInput{
		FullName:       req.FullName,
		ResumptionDate: req.ResumptionDate,
		ExitDate:       req.ExitDate,
		Location:       req.Location,
		Designation:    req.Designation,
		HiringOfficer:  req.HiringOfficer,
		Photo:          *photo,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStaffResponse(record)})
}

// List handles GET /api/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	records, err := h.staffService.ListStaff(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.NewStaffResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Update handles PUT /api/staff/:id. Accepts JSON or multipart; a photo
// part replaces the current picture.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateStaffInput{}
	if req.FullName != "" {
		input.FullName = &req.FullName
	}
	if req.Designation != "" {
		input.Designation = &req.Designation
	}
	if req.Location != "" {
		input.Location = &req.Location
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if _, err := c.FormFile(photoFieldName); err == nil {
			photo, err := h.readPhoto(c)
			if err != nil {
				return err
			}
			input.Photo = photo
		}
	}

	record, err := h.staffService.UpdateStaffRecord(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(record)})
}

// Exit handles POST /api/staff/:id/exit.
func (h *StaffHandler) Exit(c *fiber.Ctx) error {
	var req dto.ExitStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.staffService.MarkExited(c.UserContext(), c.Params("id"), req.ExitDate)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(record)})
}

// Delete handles DELETE /api/staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.staffService.DeleteStaffRecord(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// readPhoto extracts the image part and unifies file uploads and webcam
// captures into one payload shape.
func (h *StaffHandler) readPhoto(c *fiber.Ctx) (*domain.UploadableImage, error) {
	fileHeader, err := c.FormFile(photoFieldName)
	if err != nil {
		return nil, apperrors.NewValidationError("picture required", nil)
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		return nil, apperrors.NewValidationError("picture exceeds the size limit", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	source := domain.ImageSourceFileUpload
	if fileHeader.Filename == capturedFrameFilename {
		source = domain.ImageSourceCapturedFrame
	}
	return &domain.UploadableImage{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Bytes:       data,
		Source:      source,
	}, nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return "invalid field: " + fieldErrs[0].Field()
	}
	return "invalid payload"
}
