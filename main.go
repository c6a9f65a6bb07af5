package main

import (
	"ErpClinico/CronJobs"
	"ErpClinico/FirebaseMessaging"
	"ErpClinico/Models"
	"ErpClinico/Routes"
	"ErpClinico/Whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()
	FirebaseMessaging.Setup()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	},
	))
	Routes.ConfigRoutes(router)

	workers := CronJobs.NewClinicWorkers(Models.DB)
	workers.StartCron()

	go Whatsapp.Listen()

	router.Run(":3005")
}
