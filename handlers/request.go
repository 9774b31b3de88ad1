package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"amedick/config"
	"amedick/middleware"
	"amedick/models"
	"amedick/services/storage"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// principal returns the authenticated caller or writes a 401 and reports false.
func principal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token", "unauthorized")
	}
	return p, ok
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "invalid_request")
		return false
	}
	return true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formFiles opens the named multipart parts that are present. The returned func closes them.
func formFiles(c *gin.Context, fields ...string) ([]storage.File, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	var files []storage.File
	for _, field := range fields {
		header, err := c.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			closeAll()
			return nil, func() {}, err
		}
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, storage.File{Field: field, Filename: header.Filename, Content: f})
	}
	return files, closeAll, nil
}

// setSessionCookie mirrors the issued token into the accesstoken cookie for browser clients.
func setSessionCookie(c *gin.Context, token string) {
	maxAge := int(config.AppConfig.JWTExpires.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, maxAge, "/", "", config.IsProduction(), true)
}
