package server

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/cardiocare/internal/apperrors"
	"github.com/Skufu/cardiocare/internal/cardio"
	"github.com/Skufu/cardiocare/internal/predictor"
	"github.com/Skufu/cardiocare/internal/report"
)

type PredictResponse struct {
	Success          bool             `json:"success"`
	Prediction       int              `json:"prediction"`
	Probability      float64          `json:"probability"`
	HeartAge         int              `json:"heart_age"`
	ChronologicalAge float64          `json:"chronological_age"`
	RebootPlan       []cardio.DayPlan `json:"reboot_plan"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

func (s *Server) predict(c *gin.Context) {
	if s.model == nil {
		s.fail(c, apperrors.ErrModelUnavailable)
		return
	}

	obs, err := cardio.ParseObservation(c.GetPostForm)
	if err != nil {
		s.fail(c, apperrors.Wrap(err, apperrors.ErrInvalidInput))
		return
	}

	pred, err := s.model.Assess(obs.Vector())
	if err != nil {
		s.fail(c, err)
		return
	}

	heartAge := cardio.HeartAge(obs)
	s.metrics.RecordPrediction(pred.Label, cardio.AgeGap(heartAge, obs))

	c.JSON(http.StatusOK, PredictResponse{
		Success:          true,
		Prediction:       pred.Label,
		Probability:      pred.Probability,
		HeartAge:         heartAge,
		ChronologicalAge: obs.Age,
		RebootPlan:       cardio.RebootPlan(obs, pred.Label),
	})
}

// generateReport renders the PDF. It works without a model, reporting low risk
// at 0%. Every failure here is a server error.
func (s *Server) generateReport(c *gin.Context) {
	name := report.PatientName(c.PostForm("patient_name"))

	obs, err := cardio.ParseObservation(c.GetPostForm)
	if err != nil {
		s.fail(c, apperrors.Wrap(err, apperrors.ErrRenderFailed))
		return
	}

	var pred predictor.Prediction
	if s.model != nil {
		pred, err = s.model.Assess(obs.Vector())
		if err != nil {
			s.fail(c, apperrors.Wrap(err, apperrors.ErrRenderFailed))
			return
		}
	}

	issued := s.now()
	var buf bytes.Buffer
	err = report.Render(&buf, report.Assessment{
		PatientName: name,
		Observation: obs,
		Prediction:  pred,
		HeartAge:    cardio.HeartAge(obs),
		Plan:        cardio.RebootPlan(obs, pred.Label),
		IssuedAt:    issued,
	})
	if err != nil {
		s.fail(c, apperrors.Wrap(err, apperrors.ErrRenderFailed))
		return
	}

	s.metrics.RecordReport()
	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": report.Filename(name, issued),
	})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (s *Server) chatReply(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.Wrap(err, apperrors.ErrBadRequest))
		return
	}

	reply, source := s.chat.Respond(req.Message)
	s.metrics.RecordChat(string(source))
	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

// fail writes the error payload and records it. The client sees the raw cause.
func (s *Server) fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.GetCode(err)
	s.metrics.RecordError(c.FullPath(), code)

	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.String("code", code), zap.Error(err))
	}
	_ = c.Error(err)

	c.JSON(status, gin.H{
		"success": false,
		"error":   apperrors.Message(err),
		"code":    code,
	})
}
