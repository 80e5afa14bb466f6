package main

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/workflow"
	"github.com/gin-gonic/gin"
)

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func listExpensesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
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
		if v := c.Query("company_id"); v != "" {
			companyId, err := strconv.Atoi(v)
			if err != nil || companyId <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company_id filter"})
				return
			}
			filter.CompanyId = &companyId
		}
		if v := c.Query("user_id"); v != "" {
			userId, err := strconv.Atoi(v)
			if err != nil || userId <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id filter"})
				return
			}
			filter.UserId = &userId
		}

		expenses, err := models.ListExpenses(ctx, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

func getExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}

		expense, err := models.GetExpense(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expense)
	}
}

func createExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}

		var input models.NewExpense
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		expense, err := models.CreateExpense(ctx, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, expense)
	}
}

func updateExpenseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}

		var input models.NewExpense
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		expense, err := models.UpdateExpense(ctx, id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expense)
	}
}

func expenseStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.Authorize(ctx, workflow.OpTransitionStatus); err != nil {
			respondError(c, err)
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}

		var input workflow.TransitionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, span := tracer.Start(ctx, "expense-status-transition")
		defer span.End()

		expense, err := workflow.SubmitTransition(ctx, id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expense)
	}
}
