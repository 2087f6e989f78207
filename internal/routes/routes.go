package routes

import (
	"clinic-backend/internal/handlers"
	"clinic-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes đăng ký toàn bộ route. Tên route giữ nguyên theo contract
// của frontend cũ (BenhNhan, DichVu, TiepNhan...) để không phải sửa client.
func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.RateLimitMiddleware())

	api := r.Group("/api")
	{
		// Public: đăng nhập + webhook cổng thanh toán
		api.POST("/Auth/Login", handlers.Login)
		api.POST("/ThanhToan/Notification", handlers.HandleGatewayNotification)

		// Các route còn lại phải có token
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/Users/Profile", handlers.GetUserProfile)
			protected.GET("/Users/GetBacSi/:branchId", handlers.GetBacSi)
			protected.GET("/DanToc", handlers.GetDanToc)
			protected.GET("/DonViHanhChinh/GetAllByCap/:cap", handlers.GetAdminUnitsByCap)

			// MODULE BỆNH NHÂN
			protected.GET("/BenhNhan", handlers.SearchPatients)
			protected.GET("/BenhNhan/:id", handlers.GetPatient)
			protected.POST("/BenhNhan", handlers.CreatePatient)
			protected.PUT("/BenhNhan/:id", handlers.UpdatePatient)
			protected.GET("/BenhNhan/:id/LichSu", handlers.GetPatientHistory)

			// MODULE TIẾP NHẬN + BẢN NHÁP
			protected.GET("/TiepNhan", handlers.GetRegistrations)
			protected.GET("/TiepNhan/Draft", handlers.GetDraft)
			protected.PUT("/TiepNhan/Draft", handlers.SaveDraft)
			protected.DELETE("/TiepNhan/Draft", handlers.ResetDraft)
			protected.POST("/TiepNhan/Draft/Submit", handlers.SubmitDraft)
			protected.POST("/TiepNhan", handlers.CreateRegistration)
			protected.GET("/TiepNhan/:id", handlers.GetRegistration)

			// MODULE DANH MỤC DỊCH VỤ (đọc thì ai cũng được, sửa thì Admin)
			protected.GET("/DichVu", handlers.GetServices)
			protected.GET("/DichVu/Export", handlers.ExportServices)

			adminDv := protected.Group("/DichVu")
			adminDv.Use(middleware.AdminOnly())
			{
				adminDv.POST("", handlers.CreateService)
				adminDv.PUT("/:id", handlers.UpdateService)
				adminDv.DELETE("/:id", handlers.DeleteService)
				adminDv.POST("/:id/Duplicate", handlers.DuplicateService)
				adminDv.POST("/BulkUpdate", handlers.BulkUpdateServices)
				adminDv.POST("/BulkDelete", handlers.BulkDeleteServices)
				adminDv.POST("/Import", handlers.ImportServices)
			}

			// MODULE THU NGÂN
			thuNgan := protected.Group("/ThanhToan")
			thuNgan.Use(middleware.ThuNganOnly())
			{
				thuNgan.GET("/BenhNhan/:id", handlers.GetPatientInvoices)
				thuNgan.POST("", handlers.CreatePayment)
				thuNgan.POST("/XacNhanVietQR", handlers.ConfirmVietQR)
			}

			// MODULE KHÁM BỆNH (bác sĩ)
			khamBenh := protected.Group("/KhamBenh")
			khamBenh.Use(middleware.BacSiOnly())
			{
				khamBenh.GET("/HangCho", handlers.GetMyQueue)
				khamBenh.POST("/:id/PhieuKham", handlers.SubmitExamRecord)
				khamBenh.GET("/:id/PhieuKham", handlers.GetExamRecords)
				khamBenh.PUT("/ChiDinh/:orderId", handlers.TransitionOrder)
			}

			// MODULE BÁO CÁO
			protected.GET("/BaoCao/Dashboard", handlers.GetDashboardStats)
			protected.GET("/BaoCao/DoanhThu", handlers.GetRevenueReport)
			protected.GET("/BaoCao/DoanhThu/Export", handlers.ExportRevenueReport)

			// Quản trị tài khoản
			admin := protected.Group("/Users")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/Register", handlers.Register)
			}

			// Xoá bệnh nhân để riêng, chỉ Admin
			xoaBn := protected.Group("/BenhNhan")
			xoaBn.Use(middleware.AdminOnly())
			{
				xoaBn.DELETE("/:id", handlers.DeletePatient)
			}
		}
	}
}
