package endpoint

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/metrics"
	"github.com/ariebrainware/clinic-records/middleware"
	"github.com/ariebrainware/clinic-records/util"
)

// NewRouter builds the HTTP engine serving the clinic records API. m may be
// nil, in which case no HTTP metrics are recorded and /metrics is not served.
func NewRouter(db *gorm.DB, m *metrics.Metrics, appName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EndpointCallLogger())
	if m != nil {
		router.Use(middleware.Metrics(m))
	}
	router.Use(middleware.DatabaseMiddleware(db))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", appName),
		})
	})
	router.GET("/healthz", Healthz)
	if m != nil {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")
	{
		documentTypes := api.Group("/document-types")
		documentTypes.GET("", ListDocumentTypes)
		documentTypes.POST("", CreateDocumentType)
		documentTypes.GET("/:id", GetDocumentType)
		documentTypes.PATCH("/:id", UpdateDocumentType)
		documentTypes.DELETE("/:id", DeleteDocumentType)
		documentTypes.POST("/:id/restore", RestoreDocumentType)
		documentTypes.DELETE("/:id/purge", PurgeDocumentType)

		patients := api.Group("/patients")
		patients.GET("", ListPatients)
		patients.POST("", CreatePatient)
		patients.GET("/:id", GetPatient)
		patients.PATCH("/:id", UpdatePatient)
		patients.DELETE("/:id", DeletePatient)

		histories := api.Group("/histories")
		histories.GET("", ListHistories)
		histories.POST("", CreateHistory)
		histories.GET("/:id", GetHistory)
		histories.PATCH("/:id", UpdateHistory)
		histories.DELETE("/:id", DeleteHistory)
		histories.POST("/:id/restore", RestoreHistory)
		histories.DELETE("/:id/purge", PurgeHistory)

		paymentTypes := api.Group("/payment-types")
		paymentTypes.GET("", ListPaymentTypes)
		paymentTypes.POST("", CreatePaymentType)
		paymentTypes.GET("/:id", GetPaymentType)
		paymentTypes.PATCH("/:id", UpdatePaymentType)
		paymentTypes.DELETE("/:id", DeletePaymentType)
		paymentTypes.POST("/:id/restore", RestorePaymentType)
		paymentTypes.DELETE("/:id/purge", PurgePaymentType)

		prices := api.Group("/predetermined-prices")
		prices.GET("", ListPredeterminedPrices)
		prices.POST("", CreatePredeterminedPrice)
		prices.GET("/:id", GetPredeterminedPrice)
		prices.PATCH("/:id", UpdatePredeterminedPrice)
		prices.DELETE("/:id", DeletePredeterminedPrice)

		appointments := api.Group("/appointments")
		appointments.GET("", ListAppointments)
		appointments.POST("", CreateAppointment)
		appointments.GET("/:id", GetAppointment)
		appointments.PATCH("/:id", UpdateAppointment)
		appointments.DELETE("/:id", DeleteAppointment)
	}

	return router
}

// Healthz godoc
// @Summary      Health check
// @Description  Reports whether the database answers a ping
// @Tags         System
// @Produce      json
// @Success      200 {object} util.APIResponse "Service healthy"
// @Failure      500 {object} util.APIResponse "Database unreachable"
// @Router       /healthz [get]
func Healthz(c *gin.Context) {
	db, ok := ensureDB(c)
	if !ok {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database unreachable",
			Err: err,
		})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Service healthy",
		Data: map[string]interface{}{"database": "ok"},
	})
}
