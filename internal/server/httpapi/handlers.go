package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, err)
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Email, req.Name, req.Password, models.Role(req.Role), req.ManagerID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Msg: "Registered"})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, err)
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	resp, err := toLoginResponse(res)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) getUser(c *gin.Context) {
	u, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}

func (s *HTTPServer) team(c *gin.Context) {
	team, err := s.users.ListTeam(c.Request.Context(), callerFrom(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(team))
}

func (s *HTTPServer) createFeedback(c *gin.Context) {
	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, err)
		return
	}

	id, err := s.feedback.Create(c.Request.Context(), callerFrom(c),
		req.EmployeeID, *req.Strengths, *req.Improvements, models.Sentiment(req.Sentiment))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, idResponse{ID: id})
}

func (s *HTTPServer) listFeedback(c *gin.Context) {
	list, err := s.feedback.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFeedbackResponses(list))
}

func (s *HTTPServer) getFeedback(c *gin.Context) {
	fb, err := s.feedback.Get(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFeedbackResponse(fb))
}

func (s *HTTPServer) updateFeedback(c *gin.Context) {
	var req updateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, err)
		return
	}

	if err := s.feedback.Update(c.Request.Context(), callerFrom(c), c.Param("id"), req.patch()); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Msg: "Updated"})
}

func (s *HTTPServer) acknowledgeFeedback(c *gin.Context) {
	var req ackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, err)
		return
	}

	if err := s.feedback.Acknowledge(c.Request.Context(), callerFrom(c), req.FeedbackID); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Msg: "Acknowledged"})
}

// getDashboard answers managers with an object and employees with a bare
// list.
func (s *HTTPServer) getDashboard(c *gin.Context) {
	d, err := s.dashboard.Get(c.Request.Context(), callerFrom(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	switch d.Role {
	case models.RoleManager:
		c.JSON(http.StatusOK, managerDashboardResponse{
			Employees: toUserResponses(d.Employees),
			Feedbacks: toFeedbackResponses(d.Feedback),
		})
	case models.RoleEmployee:
		c.JSON(http.StatusOK, toFeedbackResponses(d.Timeline))
	default:
		s.abortWithError(c, fmt.Errorf("unexpected dashboard role %q", d.Role))
	}
}
