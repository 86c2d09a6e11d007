package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mindcheck/internal/assessment"
)

func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Mental Health Assessment API is running",
		"endpoints": gin.H{
			"predict":          "/api/predict",
			"academic_options": "/api/academic-options",
			"conditions":       "/api/conditions",
		},
	})
}

func (s *Server) academicOptions(c *gin.Context) {
	c.JSON(http.StatusOK, assessment.AcademicOptions())
}

type conditionEntry struct {
	Condition      assessment.Condition `json:"condition"`
	Recommendation string               `json:"recommendation"`
}

func (s *Server) conditions(c *gin.Context) {
	table := s.svc.Advice()
	out := make([]conditionEntry, 0, len(assessment.AllConditions()))
	for _, cond := range assessment.AllConditions() {
		out = append(out, conditionEntry{Condition: cond, Recommendation: table.Recommend(cond)})
	}
	c.JSON(http.StatusOK, gin.H{"content_set": table.Name(), "conditions": out})
}

func (s *Server) predict(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	rec, err := assessment.DecodeRecord(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.svc.Assess(c.Request.Context(), rec)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// statusFor maps bad input to 400. Schema mismatches and anything else
// are server faults.
func statusFor(err error) int {
	var (
		verr    *assessment.ValidationError
		unknown *assessment.UnknownCategoryError
	)
	if errors.As(err, &verr) || errors.As(err, &unknown) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
