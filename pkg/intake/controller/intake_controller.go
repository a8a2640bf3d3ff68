package controller

import "github.com/labstack/echo/v4"

type IntakeController interface {
	Submit(c echo.Context) error
	Options(c echo.Context) error
}
