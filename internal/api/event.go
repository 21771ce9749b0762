package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"svbase/internal/access"
)

// Типы событий POST /api/event.
const (
	EventTest         = "test"
	EventNomenclature = "nomenclature"
	EventSelect       = "instance_select"
	EventInsert       = "instance_insert"
	EventUpdate       = "instance_update"
	EventDelete       = "instance_delete"
	EventList         = "instance_list"
)

type eventRequest struct {
	Type    string         `json:"type"`
	Table   string         `json:"table"`
	UUID    string         `json:"uuid"`
	Data    map[string]any `json:"data"`
	Options access.Page    `json:"options"`
}

// POST /api/event
func EventHandler(srv *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req eventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, access.Result{Status: http.StatusBadRequest, Message: "Invalid JSON"})
			return
		}
		ctx := c.Request.Context()

		var (
			res access.Result
			err error
		)
		switch req.Type {
		case EventTest:
			c.JSON(http.StatusOK, testPayload(time.Now()))
			return

		case EventNomenclature:
			var recs []access.Record
			recs, err = srv.Lists.SelectAll(ctx, "nomenclature")
			res = access.Respond(recs, err)

		case EventSelect:
			var rec access.Record
			rec, err = srv.Records.Select(ctx, req.Table, req.UUID)
			res = access.Respond(rec, err)

		case EventInsert:
			var rec access.Record
			rec, err = srv.Records.Insert(ctx, req.Table, normalizeData(req.Data))
			res = access.Respond(rec, err)

		case EventUpdate:
			var rec access.Record
			rec, err = srv.Records.Update(ctx, req.Table, req.UUID, normalizeData(req.Data))
			res = access.Respond(rec, err)

		case EventDelete:
			var id string
			id, err = srv.Records.Delete(ctx, req.Table, req.UUID)
			res = access.RespondDeleted(id, err)

		case EventList:
			var page access.PageResult
			page, err = srv.Lists.SelectPage(ctx, req.Table, req.Options)
			res = access.RespondPage(page, err)

		default:
			res = access.Result{Status: http.StatusBadRequest, Message: "Unknown type"}
		}
		writeResult(c, res, err)
	}
}

func testPayload(now time.Time) gin.H {
	_, offset := now.Zone()
	return gin.H{
		"time":     now,
		"timezone": float64(offset) / 3600,
		"status":   http.StatusOK,
		"msg":      "TEST OK",
	}
}

// GET /api/event
func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"status": http.StatusMethodNotAllowed,
			"msg":    "Method Not Allowed (method GET not allowed)",
		})
	}
}
