package controller

import (
	"io"
	"strconv"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps one bulk upload at 10 MB of text.
const maxUploadBytes = 10 << 20

type IngestController struct {
	IngestService *service.IngestService
}

func NewIngestController(ingestService *service.IngestService) *IngestController {
	return &IngestController{IngestService: ingestService}
}

type ingestTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// UploadFile godoc
// @Summary Bulk import questions from a text file (admin)
// @Description Parses "---" separated MCQ blocks. Valid blocks are inserted,
// @Description invalid ones are reported with their 1-based block index.
// @Tags ingest
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Block-formatted .txt file"
// @Success 200 {object} util.Response{data=service.IngestReport}
// @Failure 400 {object} util.Response
// @Router /api/admin/ingest/file [post]
func (c *IngestController) UploadFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		util.BadRequest(ctx, "file exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	report, err := c.IngestService.IngestText(ctx.Request.Context(), claims.UserID, fileHeader.Filename, string(raw))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// UploadText godoc
// @Summary Bulk import questions from pasted text (admin)
// @Tags ingest
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ingestTextRequest true "Block-formatted text"
// @Success 200 {object} util.Response{data=service.IngestReport}
// @Failure 400 {object} util.Response
// @Router /api/admin/ingest/text [post]
func (c *IngestController) UploadText(ctx *gin.Context) {
	var req ingestTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(req.Text) > maxUploadBytes {
		util.BadRequest(ctx, "text exceeds the 10MB limit")
		return
	}

	claims := util.GetUserFromContext(ctx)
	report, err := c.IngestService.IngestText(ctx.Request.Context(), claims.UserID, "", req.Text)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// ListJobs godoc
// @Summary Past ingest jobs (admin)
// @Tags ingest
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/ingest/jobs [get]
func (c *IngestController) ListJobs(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	jobs, total, err := c.IngestService.ListJobs(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  jobs,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}
