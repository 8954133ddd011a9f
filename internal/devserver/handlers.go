package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/muurk/geoadmin/internal/model"
)

// maxPageSize bounds pageSize on paginated listings
const maxPageSize = 100

type countryRequest struct {
	Name string `json:"name" binding:"required"`
}

type stateRequest struct {
	Name      string `json:"name" binding:"required"`
	CountryID int64  `json:"countryId" binding:"required"`
}

// pageResponse mirrors the Spring Data page shape the screens were built
// against. Only content and totalPages are read by the client.
type pageResponse[T any] struct {
	Content       []T  `json:"content"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

func newPageResponse[T any](content []T, pageNo, pageSize, totalPages, total int) pageResponse[T] {
	return pageResponse[T]{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: total,
		Number:        pageNo,
		Size:          pageSize,
		First:         pageNo == 0,
		Last:          pageNo >= totalPages-1,
	}
}

// pageParams reads pageNo/pageSize. paged is false when neither is given,
// which selects the unpaginated listing.
func pageParams(c *gin.Context) (pageNo, pageSize int, paged bool, err error) {
	rawNo, hasNo := c.GetQuery("pageNo")
	rawSize, hasSize := c.GetQuery("pageSize")
	if !hasNo && !hasSize {
		return 0, 0, false, nil
	}

	pageSize = 5
	if hasNo {
		if pageNo, err = strconv.Atoi(rawNo); err != nil || pageNo < 0 {
			return 0, 0, true, errors.New("pageNo must be a non-negative integer")
		}
	}
	if hasSize {
		if pageSize, err = strconv.Atoi(rawSize); err != nil || pageSize < 1 || pageSize > maxPageSize {
			return 0, 0, true, errors.New("pageSize must be between 1 and 100")
		}
	}
	return pageNo, pageSize, true, nil
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// storeError maps a store error to a status code
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUnknownCountry), errors.Is(err, ErrBlankName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) listCountries(c *gin.Context) {
	pageNo, pageSize, paged, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !paged {
		c.JSON(http.StatusOK, s.store.Countries())
		return
	}
	content, pages := s.store.CountryPage(pageNo, pageSize)
	total, _ := s.store.Counts()
	c.JSON(http.StatusOK, newPageResponse(content, pageNo, pageSize, pages, total))
}

func (s *Server) createCountry(c *gin.Context) {
	var req countryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	country, err := s.store.CreateCountry(req.Name)
	if err != nil {
		storeError(c, err)
		return
	}
	s.publish("country", model.ActionCreated, country.ID)
	c.JSON(http.StatusCreated, country)
}

func (s *Server) updateCountry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req countryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	country, err := s.store.UpdateCountry(id, req.Name)
	if err != nil {
		storeError(c, err)
		return
	}
	s.publish("country", model.ActionUpdated, id)
	c.JSON(http.StatusOK, country)
}

func (s *Server) deleteCountry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.store.DeleteCountry(id); err != nil {
		storeError(c, err)
		return
	}
	s.publish("country", model.ActionDeleted, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listStates(c *gin.Context) {
	pageNo, pageSize, paged, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !paged {
		c.JSON(http.StatusOK, s.store.States())
		return
	}
	content, pages := s.store.StatePage(pageNo, pageSize)
	_, total := s.store.Counts()
	c.JSON(http.StatusOK, newPageResponse(content, pageNo, pageSize, pages, total))
}

func (s *Server) createState(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := s.store.CreateState(req.Name, req.CountryID)
	if err != nil {
		storeError(c, err)
		return
	}
	s.publish("state", model.ActionCreated, state.ID)
	c.JSON(http.StatusCreated, state)
}

func (s *Server) updateState(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := s.store.UpdateState(id, req.Name, req.CountryID)
	if err != nil {
		storeError(c, err)
		return
	}
	s.publish("state", model.ActionUpdated, id)
	c.JSON(http.StatusOK, state)
}

func (s *Server) deleteState(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.store.DeleteState(id); err != nil {
		storeError(c, err)
		return
	}
	s.publish("state", model.ActionDeleted, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) health(c *gin.Context) {
	countries, states := s.store.Counts()
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"countries":   countries,
		"states":      states,
		"subscribers": s.hub.Subscribers(),
	})
}

func (s *Server) events(c *gin.Context) {
	s.hub.ServeWS(c.Writer, c.Request)
}

func (s *Server) publish(entity, action string, id int64) {
	s.hub.Publish(model.ChangeEvent{Entity: entity, Action: action, ID: id})
}
