package ui

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"csvalign/app"
	"csvalign/internal/errors"
)

// handleIndex renders the single page with the provider catalog baked in.
func (s *Server) handleIndex(c *gin.Context) {
	data := gin.H{
		"Providers": s.catalog.Providers,
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", data); err != nil {
		s.logger.Error("[handleIndex] template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// handleProviders returns the provider catalog as JSON.
func (s *Server) handleProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": s.catalog.Providers})
}

// handleStatus reports the current session state for polling.
func (s *Server) handleStatus(c *gin.Context) {
	session := s.service.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"processing":   session.Processing,
		"error":        session.ErrMessage,
		"firstLoaded":  session.First != nil,
		"secondLoaded": session.Second != nil,
		"hasResult":    session.Result != nil,
	})
}

// handleUpload reads one multipart spreadsheet file into the named slot.
func (s *Server) handleUpload(c *gin.Context) {
	slot := app.Slot(c.PostForm("slot"))
	if slot != app.SlotFirst && slot != app.SlotSecond {
		c.JSON(http.StatusBadRequest, gin.H{"error": `slot must be "first" or "second"`})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file in request"})
		return
	}
	file, err := header.Open()
	if err != nil {
		s.logger.Error("[handleUpload] open %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("[handleUpload] read %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	tbl, err := s.reader.Read(header.Filename, data)
	if err != nil {
		s.logger.Error("[handleUpload] parse %s: %v", header.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.service.LoadTable(slot, tbl)
	c.JSON(http.StatusOK, gin.H{"slot": slot, "table": tbl})
}

type processForm struct {
	Provider string `json:"provider" form:"provider"`
	Model    string `json:"model" form:"model"`
	APIKey   string `json:"api_key" form:"api_key"`
}

// handleProcess runs one comparison and returns the parsed result table. The
// typed key is forwarded for this request only and never stored.
func (s *Server) handleProcess(c *gin.Context) {
	var form processForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if form.Model == "" && form.Provider != "" {
		form.Model = s.catalog.DefaultModel(form.Provider)
	}

	result, err := s.service.Process(c.Request.Context(), app.ProcessRequest{
		Provider:   form.Provider,
		Model:      form.Model,
		Credential: form.APIKey,
	})
	if err != nil {
		code := errors.GetCode(err)
		c.JSON(statusForCode(code), gin.H{"error": err.Error(), "code": code})
		return
	}
	if result == nil {
		// Empty completion: no error, no table.
		c.JSON(http.StatusOK, gin.H{"result": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// handleDownload serves the raw result text as a CSV attachment.
func (s *Server) handleDownload(c *gin.Context) {
	csv, ok := s.service.DownloadCSV()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no result to download"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="processed-comparison.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// statusForCode maps pipeline error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case errors.CodeMissingInput, errors.CodeMissingCredential, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeBusy:
		return http.StatusConflict
	case errors.CodeCompletionError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
