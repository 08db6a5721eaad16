package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filebox-api/internal/application/ports"
	"filebox-api/internal/application/services"
	domain "filebox-api/internal/domain/user"
	"filebox-api/internal/infrastructure/jwt"
	"filebox-api/internal/infrastructure/storage"
	"filebox-api/internal/interface/api/rest/dto/file"
	"filebox-api/internal/interface/api/rest/middleware"
	"filebox-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.POST(RouteFiles, auth, fc.UploadFileHandler)
	r.GET(RouteFiles, auth, fc.GetFilesHandler)
	r.GET(RouteFile, auth, fc.GetFileHandler)
	r.GET(RouteFileDownloadURL, auth, fc.DownloadURLHandler)
	r.DELETE(RouteFile, auth, fc.DeleteFileHandler)
	r.POST(RouteFilesBulkDelete, auth, fc.BulkDeleteHandler)

	return fc
}

func callerUUID(c *gin.Context) (domain.UUID, bool) {
	ok, id := validator.IsUUID(c.GetString(middleware.CtxUserID))
	return id, ok
}

// respondFileError translates the lifecycle error taxonomy onto HTTP.
func (fc *FileController) respondFileError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrQuotaExceeded):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "file belongs to another user"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, storage.ErrPresignUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "presigned URLs are not supported by the active storage provider"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + op})
		fc.logger.Error(op+" error", zap.Error(err))
	}
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	caller, ok := callerUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return
	}

	f, err := fc.fileService.Upload(c.Request.Context(), caller, fh)
	if err != nil {
		fc.respondFileError(c, "upload file", err)
		return
	}

	c.JSON(http.StatusCreated, file.ToResponseFile(*f))
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	caller, ok := callerUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	fls, _, err := fc.fileService.List(c.Request.Context(), caller, c.Query("category"))
	if err != nil {
		fc.respondFileError(c, "get files", err)
		return
	}

	c.JSON(http.StatusOK, file.ResponseData{
		Data: file.ToResponseFiles(fls),
	})
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	caller, ok := callerUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	f, err := fc.fileService.GetByID(c.Request.Context(), caller, fileID)
	if err != nil {
		fc.respondFileError(c, "get file", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) DownloadURLHandler(c *gin.Context) {
	caller, ok := callerUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	url, err := fc.fileService.DownloadURL(c.Request.Context(), caller, fileID)
	if err != nil {
		fc.respondFileError(c, "presign download url", err)
		return
	}

	c.JSON(http.StatusOK, file.DownloadURLResponse{
		URL:       url,
		ExpiresIn: int64(storage.DefaultPresignExpiry.Seconds()),
	})
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	caller, ok := callerUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	if err := fc.fileService.Delete(c.Request.Context(), caller, fileID); err != nil {
		fc.respondFileError(c, "delete file", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) BulkDeleteHandler(c *gin.Context) {
	caller, ok := callerUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	var req file.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ids, errs := validator.ValidateBulkDeleteIDs(req.FileIDs)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	res, err := fc.fileService.DeleteMany(c.Request.Context(), caller, ids)
	if err != nil {
		fc.respondFileError(c, "bulk delete files", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseBulkDelete(*res))
}
