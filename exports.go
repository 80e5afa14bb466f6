package main

import (
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// claimsReportHandler streams the visible expense claims as an xlsx workbook.
// The same visibility rules as the list endpoint apply; the report is just a
// different rendering of ListExpenses.
func claimsReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.Authorize(ctx, workflow.OpExportExpenses); err != nil {
			respondError(c, err)
			return
		}

		var filter models.ExpenseFilter
		if v := c.Query("status"); v != "" {
			status := models.ExpenseStatus(v)
			if !status.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
				return
			}
			filter.Status = &status
		}

		expenses, err := models.ListExpenses(ctx, filter)
		if err != nil {
			respondError(c, err)
			return
		}

		f := excelize.NewFile()
		sheetName := "Claims"
		index, err := f.NewSheet(sheetName)
		if err != nil {
			respondError(c, err)
			return
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1")

		// Add headers
		f.SetCellValue(sheetName, "A1", "Id")
		f.SetCellValue(sheetName, "B1", "Date")
		f.SetCellValue(sheetName, "C1", "Description")
		f.SetCellValue(sheetName, "D1", "Amount")
		f.SetCellValue(sheetName, "E1", "Status")
		f.SetCellValue(sheetName, "F1", "Billable")
		f.SetCellValue(sheetName, "G1", "Employee")
		f.SetCellValue(sheetName, "H1", "Company")
		f.SetCellValue(sheetName, "I1", "Approver")
		f.SetCellValue(sheetName, "J1", "RejectionReason")

		// Add data
		for i, e := range expenses {
			row := fmt.Sprint(i + 2)
			f.SetCellValue(sheetName, "A"+row, e.ID)
			f.SetCellValue(sheetName, "B"+row, e.ExpenseDate.Format("2006-01-02"))
			f.SetCellValue(sheetName, "C"+row, e.Description)
			f.SetCellValue(sheetName, "D"+row, e.Amount.StringFixed(2))
			f.SetCellValue(sheetName, "E"+row, string(e.Status))
			if e.Billable != nil {
				f.SetCellValue(sheetName, "F"+row, *e.Billable)
			}
			if e.User != nil {
				f.SetCellValue(sheetName, "G"+row, e.User.Name)
			}
			if e.Company != nil {
				f.SetCellValue(sheetName, "H"+row, e.Company.Name)
			}
			if e.Approver != nil {
				f.SetCellValue(sheetName, "I"+row, e.Approver.Name)
			}
			if e.RejectionReason != nil {
				f.SetCellValue(sheetName, "J"+row, *e.RejectionReason)
			}
		}

		filename := fmt.Sprintf("claims-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
		c.Writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Writer.Header().Set("Content-Disposition", "attachment; filename="+filename)
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "exports.go", "claimsReportHandler", "write workbook", nil, err)
		}
	}
}
