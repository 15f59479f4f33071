package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/suweldo/payroll-backend-go/internal/config"
	appHTTP "github.com/suweldo/payroll-backend-go/internal/handler/http"
	"github.com/suweldo/payroll-backend-go/internal/pkg/clock"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
	"github.com/suweldo/payroll-backend-go/internal/pkg/payslip"
	"github.com/suweldo/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/suweldo/payroll-backend-go/internal/service/attendance"
	"github.com/suweldo/payroll-backend-go/internal/service/contribution"
	holidayService "github.com/suweldo/payroll-backend-go/internal/service/holiday"
	leaveService "github.com/suweldo/payroll-backend-go/internal/service/leave"
	payrollService "github.com/suweldo/payroll-backend-go/internal/service/payroll"
	statutoryService "github.com/suweldo/payroll-backend-go/internal/service/statutory"
	"github.com/suweldo/payroll-backend-go/internal/service/tax"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	statutoryRepo := postgresql.NewStatutoryRepository(db)

	clk := clock.System()
	contributionCalc := contribution.NewCalculator(statutoryRepo)
	taxCalc := tax.NewCalculator(statutoryRepo)
	composer := payrollService.NewComposer(employeeRepo, attendanceRepo, holidayRepo, contributionCalc, taxCalc)

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, holidayRepo, leaveRepo)
	holidaySvc := holidayService.NewHolidayService(db, holidayRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo, holidayRepo, clk)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, composer, clk)
	statutorySvc := statutoryService.NewStatutoryService(db, statutoryRepo)

	renderer := payslip.NewRenderer(cfg.App.CompanyName)
	jwtAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTAuth:    jwtAuth,
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc, renderer),
		Statutory:  appHTTP.NewStatutoryHandler(statutorySvc),
		Env:        cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
