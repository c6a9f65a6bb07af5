package Controllers

import (
	"ErpClinico/Models"
	"fmt"
	"log"
	"net/http"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

func ExportPayrollExcel(c *gin.Context) {
	var input struct {
		PeriodID uint `json:"period_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var period Models.PayrollPeriod
	if err := Models.DB.Model(&Models.PayrollPeriod{}).Where("id = ?", input.PeriodID).First(&period).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period not found"})
		return
	}

	var details []Models.PayrollDetail
	if err := Models.DB.Model(&Models.PayrollDetail{}).
		Where("payroll_period_id = ?", input.PeriodID).
		Order("therapist_id asc").
		Find(&details).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headers := map[string]string{
		"A1": "Therapist",
		"B1": "Sessions Intramural",
		"C1": "Sessions Home",
		"D1": "Hours Intramural",
		"E1": "Hours Home",
		"F1": "Subtotal Intramural",
		"G1": "Subtotal Home",
		"H1": "Total Gross",
	}
	file := excelize.NewFile()
	sheet := "Payroll"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(details); i++ {
		appendRowPayroll(sheet, file, i, details)
	}
	var filename string = fmt.Sprintf("./Payroll-%s.xlsx", period.Label())
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowPayroll(sheet string, file *excelize.File, index int, rows []Models.PayrollDetail) (fileWriter *excelize.File) {
	rowCount := index + 2
	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), rows[index].TherapistName)
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), rows[index].SessionsIntramural)
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), rows[index].SessionsHome)
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), rows[index].HoursIntramural)
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), rows[index].HoursHome)
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), rows[index].SubtotalIntramural)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), rows[index].SubtotalHome)
	file.SetCellValue(sheet, fmt.Sprintf("H%v", rowCount), rows[index].TotalGross)
	return file

}

func ExportSessionsExcel(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	var sessions []Models.Session

	if input.DateFrom != "" && input.DateTo != "" {
		if err := Models.DB.Model(&Models.Session{}).
			Where("date BETWEEN ? AND ?", input.DateFrom, input.DateTo).
			Order("date asc").
			Find(&sessions).Error; err != nil {
			c.JSON(http.StatusBadRequest, err)
			return
		}
	} else {
		if err := Models.DB.Model(&Models.Session{}).Order("date asc").Find(&sessions).Error; err != nil {
			c.JSON(http.StatusBadRequest, err)
			return
		}
	}

	headers := map[string]string{
		"A1": "Date",
		"B1": "Start",
		"C1": "Sequence",
		"D1": "Order",
		"E1": "Location",
		"F1": "State",
		"G1": "Cancel Reason",
	}

	file := excelize.NewFile()
	sheet := "Sessions"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(sessions); i++ {
		appendRowSession(sheet, file, i, sessions)
	}
	var filename string = fmt.Sprintf("./Sessions.xlsx")
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowSession(sheet string, file *excelize.File, index int, rows []Models.Session) (fileWriter *excelize.File) {
	rowCount := index + 2
	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), rows[index].Date)
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), rows[index].StartTime)
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), rows[index].SequenceNumber)
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), rows[index].MedicalOrderID)
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), rows[index].LocationType)
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), rows[index].State)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), rows[index].CancelReason)
	return file

}
