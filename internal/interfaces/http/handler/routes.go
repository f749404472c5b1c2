package handler

import (
	"github.com/branchstock/backend/internal/interfaces/http/router"
)

// Routes bundles the handlers mounted under the API prefix
type Routes struct {
	Stock     *StockHandler
	Returns   *ReturnHandler
	Customers *CustomerHandler
	Items     *ItemHandler
	Articles  *ArticleHandler
}

// Groups returns one route group per domain
func (r Routes) Groups() []router.RouteRegistrar {
	stock := router.NewDomainGroup("stock", "/stock").
		POST("", r.Stock.Add).
		POST("/range", r.Stock.ListByDateRange).
		POST("/branch", r.Stock.ListByBranch)

	returns := router.NewDomainGroup("returns", "/returns").
		POST("", r.Returns.Create).
		POST("/list", r.Returns.List).
		DELETE("/invoice", r.Returns.DeleteInvoice)

	customers := router.NewDomainGroup("customers", "/customers").
		POST("", r.Customers.Create).
		GET("", r.Customers.List).
		GET("/:id", r.Customers.GetByID).
		PUT("/:id", r.Customers.Update).
		DELETE("/:id", r.Customers.Delete).
		GET("/:id/bills", r.Customers.BillNumbers)

	items := router.NewDomainGroup("items", "/items").
		POST("", r.Items.Create).
		GET("/:id", r.Items.GetByID)

	articles := router.NewDomainGroup("articles", "/articles").
		POST("", r.Articles.Create).
		GET("", r.Articles.List).
		GET("/branch/:id", r.Articles.ListByBranch).
		GET("/:id", r.Articles.GetByID).
		PUT("/:id", r.Articles.Update).
		DELETE("/:id", r.Articles.Delete)

	return []router.RouteRegistrar{stock, returns, customers, items, articles}
}
