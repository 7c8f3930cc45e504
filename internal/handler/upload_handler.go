package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/errs"
	"github.com/sitecms/internal/middleware"
)

// UploadImage 处理图片上传请求
func (a *API) UploadImage(c *gin.Context) {
	req, err := middleware.CurrentRequest(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	// 获取上传的文件
	header, ok := req.File("image")
	if !ok {
		middleware.Abort(c, errs.Field("image", "is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	stored, err := a.uploads.Store(file)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.Log(c).Info().Str("file", stored.Filename).Int64("size", stored.Size).Msg("image uploaded")
	c.JSON(http.StatusCreated, stored)
}
