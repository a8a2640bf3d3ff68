package controller

import "github.com/labstack/echo/v4"

type RecommendController interface {
	Recommend(c echo.Context) error
	ByCapital(c echo.Context) error
	Sample(c echo.Context) error
	Catalog(c echo.Context) error
}
