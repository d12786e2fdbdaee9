package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/blink2go/internal/outputs"
	"github.com/qdm12/reprint"
)

func registerOutputEndpoints(rest *echo.Echo) {
	group := rest.Group("/output")

	group.GET("/", getOutputs)
	group.GET("/:"+urlParamId+"/", getOutput)
}

func getOutputs(c echo.Context) error {
	data := reprint.This(outputs.OutputMap.Items())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getOutput(c echo.Context) error {
	id := c.Param(urlParamId)

	data, exists := outputs.OutputMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}
