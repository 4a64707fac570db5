package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filesmanager-backend/models"
	"filesmanager-backend/service"
)

// FileHandler handles HTTP requests for file operations
type FileHandler struct {
	files *service.FileService
	auth  *service.AuthService
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *service.FileService, auth *service.AuthService) *FileHandler {
	return &FileHandler{
		files: files,
		auth:  auth,
	}
}

// requireUser resolves the request's token to a user ID, writing the 401
// response itself when that fails.
func (h *FileHandler) requireUser(c *gin.Context) (uuid.UUID, bool) {
	token := c.GetHeader(tokenHeader)
	if token == "" {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}

	userID, err := h.auth.ResolveToken(c.Request.Context(), token)
	if err != nil {
		mapError(c, err)
		return uuid.Nil, false
	}
	return userID, true
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`

	// ParentID accepts both the string form and the literal 0 clients send
	// for the root.
	ParentID any `json:"parentId"`
}

// parseParentID normalizes the wire parentId; nil means the root.
func parseParentID(v any) (*uuid.UUID, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		if t == "" || t == "0" {
			return nil, nil
		}
		id, err := uuid.Parse(t)
		if err != nil {
			return nil, models.NewValidationError("Parent not found")
		}
		return &id, nil
	case float64:
		if t == 0 {
			return nil, nil
		}
		return nil, models.NewValidationError("Parent not found")
	default:
		return nil, models.NewValidationError("Parent not found")
	}
}

// PostUpload handles POST /files
func (h *FileHandler) PostUpload(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req uploadRequest
	_ = c.ShouldBindJSON(&req)

	parentID, err := parseParentID(req.ParentID)
	if err != nil {
		mapError(c, err)
		return
	}

	file, err := h.files.Create(c.Request.Context(), service.CreateFileRequest{
		OwnerID:  userID,
		Name:     req.Name,
		Type:     models.FileType(req.Type),
		ParentID: parentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		mapError(c, err)
		return
	}

	c.JSON(http.StatusCreated, file.Projection())
}

// GetShow handles GET /files/:id
func (h *FileHandler) GetShow(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found")
		return
	}

	file, err := h.files.Get(c.Request.Context(), userID, fileID)
	if err != nil {
		mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, file.Projection())
}

// GetIndex handles GET /files, listing the requester's files under a parent
// with fixed-size pages.
func (h *FileHandler) GetIndex(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var parentID *uuid.UUID
	if raw := c.Query("parentId"); raw != "" && raw != "0" {
		id, err := uuid.Parse(raw)
		if err != nil {
			// An unparseable parent matches nothing.
			c.JSON(http.StatusOK, []models.FileProjection{})
			return
		}
		parentID = &id
	}

	page, _ := strconv.Atoi(c.Query("page"))

	files, err := h.files.List(c.Request.Context(), userID, parentID, page)
	if err != nil {
		mapError(c, err)
		return
	}

	projections := make([]models.FileProjection, 0, len(files))
	for _, f := range files {
		projections = append(projections, f.Projection())
	}

	c.JSON(http.StatusOK, projections)
}

// PutPublish handles PUT /files/:id/publish
func (h *FileHandler) PutPublish(c *gin.Context) {
	h.setPublic(c, true)
}

// PutUnpublish handles PUT /files/:id/unpublish
func (h *FileHandler) PutUnpublish(c *gin.Context) {
	h.setPublic(c, false)
}

func (h *FileHandler) setPublic(c *gin.Context, isPublic bool) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found")
		return
	}

	file, err := h.files.SetPublic(c.Request.Context(), userID, fileID, isPublic)
	if err != nil {
		mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, file.Projection())
}

// GetFile handles GET /files/:id/data. Authentication is optional here:
// public files are readable anonymously.
func (h *FileHandler) GetFile(c *gin.Context) {
	userID := uuid.Nil
	if token := c.GetHeader(tokenHeader); token != "" {
		if id, err := h.auth.ResolveToken(c.Request.Context(), token); err == nil {
			userID = id
		}
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Not found")
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))

	content, err := h.files.GetContent(c.Request.Context(), userID, fileID, size)
	if err != nil {
		mapError(c, err)
		return
	}

	c.Data(http.StatusOK, content.MIME, content.Data)
}
