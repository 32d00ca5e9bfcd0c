package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvBuilder/internal/cv"
	"cvBuilder/internal/i18n"
	"cvBuilder/internal/notify"
	"cvBuilder/internal/render"
	"cvBuilder/internal/store"
)

// CVHandler 负责工作简历的编辑、保存、加载与预览。
type CVHandler struct {
	workspace *cv.Workspace
	records   *store.RecordRepository
	publisher notify.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewCVHandler 构造 CVHandler。
func NewCVHandler(workspace *cv.Workspace, records *store.RecordRepository, publisher notify.Publisher, logger *slog.Logger) *CVHandler {
	return &CVHandler{
		workspace: workspace,
		records:   records,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

type recordResponse struct {
	Record cv.Record `json:"record"`
	Age    int       `json:"age"`
}

func (h *CVHandler) respondRecord(c *gin.Context, status int, record cv.Record) {
	c.JSON(status, recordResponse{Record: record, Age: cv.Age(record.PersonalInfo.DateOfBirth, h.now())})
}

// GetRecord 返回当前会话的工作简历。
func (h *CVHandler) GetRecord(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	h.respondRecord(c, http.StatusOK, h.workspace.Get(sessionID))
}

// UpdatePersonal 合并个人信息字段。
func (h *CVHandler) UpdatePersonal(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var patch cv.PersonalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if patch.DateOfBirth != nil && *patch.DateOfBirth != "" {
		if _, err := time.Parse(cv.DateLayout, *patch.DateOfBirth); err != nil {
			BadRequest(c, "dateOfBirth must be YYYY-MM-DD")
			return
		}
	}
	record, err := h.workspace.Update(sessionID, func(r cv.Record) (cv.Record, error) {
		return r.UpdatePersonal(patch), nil
	})
	if err != nil {
		Internal(c, "failed to update personal info")
		return
	}
	h.respondRecord(c, http.StatusOK, record)
}

// AddEntry 在指定分区末尾追加一条默认条目。
func (h *CVHandler) AddEntry(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	section, err := cv.ParseSection(c.Param("section"))
	if err != nil {
		NotFound(c, err.Error())
		return
	}

	var id string
	record, err := h.workspace.Update(sessionID, func(r cv.Record) (cv.Record, error) {
		out, newID, err := r.AddEntry(section)
		id = newID
		return out, err
	})
	if err != nil {
		h.editError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "record": record})
}

// UpdateEntry 修改条目的若干字段；任一字段非法则整体不生效。
func (h *CVHandler) UpdateEntry(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	section, err := cv.ParseSection(c.Param("section"))
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	record, err := h.workspace.Update(sessionID, func(r cv.Record) (cv.Record, error) {
		return r.UpdateEntry(section, id, fields)
	})
	if err != nil {
		h.editError(c, err)
		return
	}
	h.respondRecord(c, http.StatusOK, record)
}

// RemoveEntry 删除条目。
func (h *CVHandler) RemoveEntry(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	section, err := cv.ParseSection(c.Param("section"))
	if err != nil {
		NotFound(c, err.Error())
		return
	}

	id := c.Param("id")
	record, err := h.workspace.Update(sessionID, func(r cv.Record) (cv.Record, error) {
		return r.RemoveEntry(section, id)
	})
	if err != nil {
		h.editError(c, err)
		return
	}
	h.respondRecord(c, http.StatusOK, record)
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// Reorder 按给定 ID 顺序重排分区。
func (h *CVHandler) Reorder(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	section, err := cv.ParseSection(c.Param("section"))
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.workspace.Update(sessionID, func(r cv.Record) (cv.Record, error) {
		return r.Reorder(section, req.IDs)
	})
	if err != nil {
		h.editError(c, err)
		return
	}
	h.respondRecord(c, http.StatusOK, record)
}

type columnItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Columns 返回技能或语言的两列分布，与预览一致。
func (h *CVHandler) Columns(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	section, err := cv.ParseSection(c.Param("section"))
	if err != nil {
		NotFound(c, err.Error())
		return
	}

	tr := i18n.Lookup(requestLocale(c))
	record := h.workspace.Get(sessionID)
	var items []columnItem
	switch section {
	case cv.SectionSkills:
		for _, s := range record.Skills {
			items = append(items, columnItem{ID: s.ID, Name: s.Name, Label: tr.LevelLabel(s.Level)})
		}
	case cv.SectionLanguages:
		for _, l := range record.Languages {
			items = append(items, columnItem{ID: l.ID, Name: l.Name, Label: tr.ProficiencyLabel(l.Proficiency)})
		}
	default:
		BadRequest(c, "columns are only available for skills and languages")
		return
	}

	left, right := cv.Distribute(items)
	c.JSON(http.StatusOK, gin.H{"left": nonNil(left), "right": nonNil(right)})
}

// ClearPhoto 移除头像。
func (h *CVHandler) ClearPhoto(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	record, err := h.workspace.Update(sessionID, func(r cv.Record) (cv.Record, error) {
		return r.SetProfileImage(nil), nil
	})
	if err != nil {
		Internal(c, "failed to clear photo")
		return
	}
	h.respondRecord(c, http.StatusOK, record)
}

// Save 覆盖保存当前工作简历。
func (h *CVHandler) Save(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	logger := requestLogger(c, h.logger).With(slog.String("session_id", sessionID))

	if err := h.records.Save(c.Request.Context(), sessionID, h.workspace.Get(sessionID)); err != nil {
		logger.Error("save record failed", slog.Any("error", err))
		Internal(c, "failed to save cv")
		return
	}
	logger.Info("record saved")

	n := notify.Saved()
	publish(c, h.publisher, sessionID, n)
	Notify(c, http.StatusOK, n)
}

// Load 用已保存的简历替换工作简历；没有保存过时工作简历保持不变。
func (h *CVHandler) Load(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	logger := requestLogger(c, h.logger).With(slog.String("session_id", sessionID))

	record, err := h.records.Load(c.Request.Context(), sessionID)
	if errors.Is(err, store.ErrNothingToLoad) {
		n := notify.NothingToLoad()
		publish(c, h.publisher, sessionID, n)
		Notify(c, http.StatusNotFound, n)
		return
	}
	if err != nil {
		logger.Error("load record failed", slog.Any("error", err))
		Internal(c, "failed to load cv")
		return
	}
	h.workspace.Replace(sessionID, record)
	logger.Info("record loaded")

	n := notify.Loaded()
	publish(c, h.publisher, sessionID, n)
	c.JSON(http.StatusOK, gin.H{"notification": n, "record": record})
}

// Preview 渲染实时预览 HTML。
func (h *CVHandler) Preview(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	html, err := render.PreviewHTML(h.workspace.Get(sessionID), i18n.Lookup(requestLocale(c)), h.now())
	if err != nil {
		requestLogger(c, h.logger).Error("render preview failed", slog.Any("error", err))
		Internal(c, "failed to render preview")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *CVHandler) editError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cv.ErrEntryNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, cv.ErrUnknownField),
		errors.Is(err, cv.ErrInvalidValue),
		errors.Is(err, cv.ErrInvalidOrder):
		BadRequest(c, err.Error())
	default:
		requestLogger(c, h.logger).Error("edit record failed", slog.Any("error", err))
		Internal(c, "failed to edit cv")
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
