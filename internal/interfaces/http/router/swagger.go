package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SwaggerPath is where the API documentation UI is mounted
const SwaggerPath = "/swagger/*any"

// RegisterSwagger mounts the Swagger UI and the registered API document on engine
func RegisterSwagger(engine *gin.Engine) {
	engine.GET(SwaggerPath, ginSwagger.WrapHandler(swaggerFiles.Handler))
}
