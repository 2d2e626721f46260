package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nzai/qs/constants"
	"github.com/nzai/qs/sources"
	"github.com/nzai/qs/tables"
)

func (s Server) healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s Server) status(c *gin.Context) {
	workerState := "Disabled"
	if s.worker != nil {
		workerState = s.worker.State().String()
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"time":               time.Now().In(s.location).Format("2006-01-02 15:04:05 MST"),
		"background_enabled": s.worker != nil,
		"worker":             workerState,
		"tickers":            s.tickers,
	})
}

func (s Server) run(c *gin.Context) {
	if s.apiKey != "" && c.Query("key") != s.apiKey {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "invalid api key"})
		return
	}

	ticker := c.Query("ticker")
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "ticker is required"})
		return
	}

	result, observation, err := s.recorder.Record(ticker)
	if err != nil {
		if errors.Is(err, sources.ErrNotAvailable) {
			c.JSON(http.StatusOK, gin.H{
				"ok":       true,
				"appended": 0,
				"message":  "no data available at this moment",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"appended":  result.Added,
		"skipped":   result.Skipped,
		"timestamp": observation.Time.Format("2006-01-02 15:04:05"),
		"file":      s.appender.FilePath(ticker),
	})
}

func (s Server) table(c *gin.Context) {
	key := c.Param("key")

	table, err := tables.ReadTable(s.appender.FilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": constants.ErrTableNotFound.Error()})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	rows := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(map[string]string, len(table.Header))
		record[table.Header[0]] = row.Date
		for index, value := range row.Values {
			record[table.Header[index+1]] = value
		}

		rows = append(rows, record)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"key":    key,
		"header": table.Header,
		"rows":   rows,
	})
}
