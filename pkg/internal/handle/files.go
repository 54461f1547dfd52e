package handle

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ecolevault/pkg/internal/service"
	"github.com/yeisme/ecolevault/pkg/internal/types"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/metrics"
)

// ListFiles 按查询参数过滤返回文件列表.
// 支持 ecole（学校 ID）、type（文件类型）、my_files（只看自己上传的）.
func ListFiles(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	filter := &service.ListFilter{
		EcoleID:  c.Query("ecole"),
		FileType: c.Query("type"),
		MyFiles:  c.Query("my_files") != "",
		UserID:   id.UserID,
	}

	svc := service.NewFileService(c.Request.Context())

	files, err := svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, files)
}

// GetFile 返回文件详情.
func GetFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	file, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, file)
}

// UploadFile 上传单个文件（multipart：ecole、file、description 可选）.
func UploadFile(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	ecoleID, ok := formEcoleID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})

		return
	}

	in, cleanup, err := openUpload(fh, c.PostForm("description"))
	if err != nil {
		fail(c, err)

		return
	}
	defer cleanup()

	svc := service.NewFileService(c.Request.Context())

	file, err := svc.Upload(c.Request.Context(), ecoleID, caller.UserID, in)
	if err != nil {
		fail(c, err)

		return
	}

	metrics.UploadedBytes.Add(float64(file.FileSize))
	c.JSON(http.StatusCreated, file)
}

// UploadMultipleFiles 批量上传到同一所学校（multipart：ecole、files、description 可选）.
// 至少一个成功时返回 201，否则 400；响应包含成功与失败的完整明细.
func UploadMultipleFiles(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	ecoleID, ok := formEcoleID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})

		return
	}

	fhs := form.File["files"]
	if len(fhs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})

		return
	}

	description := c.PostForm("description")
	inputs := make([]*service.UploadInput, 0, len(fhs))
	cleanups := make([]func(), 0, len(fhs))

	defer func() {
		for _, fn := range cleanups {
			fn()
		}
	}()

	for _, fh := range fhs {
		in, cleanup, err := openUpload(fh, description)
		if err != nil {
			fail(c, err)

			return
		}

		inputs = append(inputs, in)
		cleanups = append(cleanups, cleanup)
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.UploadMultiple(c.Request.Context(), ecoleID, caller.UserID, inputs)
	if err != nil {
		fail(c, err)

		return
	}

	status := http.StatusCreated
	if resp.Uploaded == 0 {
		status = http.StatusBadRequest
	}

	for i := range resp.Files {
		metrics.UploadedBytes.Add(float64(resp.Files[i].FileSize))
	}

	c.JSON(status, resp)
}

// DownloadFile 以附件形式流式返回文件负载.
func DownloadFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	file, reader, err := svc.Download(c.Request.Context(), id)
	if err != nil {
		fail(c, err)

		return
	}
	defer func() { _ = reader.Close() }()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.DataFromReader(http.StatusOK, file.FileSize, file.MimeType, reader, nil)
}

// UpdateFile 更新文件的描述或所属学校，其余元数据只读.
func UpdateFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req types.FileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)

		return
	}

	svc := service.NewFileService(c.Request.Context())

	file, err := svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)

		return
	}

	c.JSON(http.StatusOK, file)
}

// DeleteFile 删除文件记录与对象负载.
func DeleteFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// formEcoleID 解析 multipart 表单中的学校 ID.
func formEcoleID(c *gin.Context) (uint, bool) {
	raw := c.PostForm("ecole")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ecole is required"})

		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ecole id"})

		return 0, false
	}

	return uint(id), true
}

// openUpload 打开 multipart 文件并包装为上传输入，cleanup 负责关闭句柄.
func openUpload(fh *multipart.FileHeader, description string) (*service.UploadInput, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := f.Close(); err != nil {
			log.Logger().Warn().Err(err).Str("filename", fh.Filename).Msg("close upload failed")
		}
	}

	in := &service.UploadInput{
		FileName:    fh.Filename,
		Reader:      io.Reader(f),
		Size:        fh.Size,
		Description: description,
	}

	return in, cleanup, nil
}
