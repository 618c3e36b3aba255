package server

import (
	"net/http"
	"time"

	"github.com/alkime/jailu/internal/locale"
	"github.com/alkime/jailu/internal/prompt"
	"github.com/alkime/jailu/internal/tone"
	"github.com/gin-gonic/gin"
)

type presetView struct {
	ID        tone.PresetID `json:"id"`
	Name      string        `json:"name"`
	Preferred bool          `json:"preferred"`
}

type tonesResponse struct {
	Predefined []presetView  `json:"predefined"`
	Custom     []tone.Custom `json:"custom"`
	Default    tone.PresetID `json:"default"`
}

type createToneRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

func (s *Server) handleLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": locale.Languages(),
		"default":   locale.Default().Code,
	})
}

func (s *Server) handleListTones(c *gin.Context) {
	lang := locale.LookupOrDefault(c.Query("lang"))

	presets := tone.Presets()
	views := make([]presetView, 0, len(presets))
	for _, p := range presets {
		views = append(views, presetView{ID: p.ID, Name: p.DisplayName(lang.Code), Preferred: p.Preferred})
	}

	c.JSON(http.StatusOK, tonesResponse{
		Predefined: views,
		Custom:     s.tones.List(),
		Default:    tone.Default().Preset.ID,
	})
}

func (s *Server) handleCreateTone(c *gin.Context) {
	var req createToneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	msgs := locale.LookupOrDefault(req.Language).Messages()
	name, err := tone.ValidateName(req.Name)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, tone.ValidationMessage(err, msgs))
		return
	}

	description := prompt.DescribeTone(c.Request.Context(), s.gen, name)
	custom, err := tone.NewCustom(name, description, time.Now())
	if err != nil {
		errorResponse(c, http.StatusBadRequest, tone.ValidationMessage(err, msgs))
		return
	}

	s.tones.Add(custom)
	s.logger.Info("Custom tone created", "id", custom.ID, "name", custom.Name)

	c.JSON(http.StatusCreated, custom)
}

func (s *Server) handleDeleteTone(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.tones.Find(id); !ok {
		errorResponse(c, http.StatusNotFound, "tone not found")
		return
	}

	s.tones.Remove(id)
	s.sessions.toneDeleted(id)
	s.logger.Info("Custom tone deleted", "id", id)

	c.Status(http.StatusNoContent)
}

// resolveTone finds a preset or stored custom tone by identifier.
func (s *Server) resolveTone(id string) (tone.Tone, bool) {
	if p, ok := tone.LookupPreset(id); ok {
		return tone.Predefined(p), true
	}
	if custom, ok := s.tones.Find(id); ok {
		return tone.FromCustom(custom), true
	}
	return tone.Tone{}, false
}
