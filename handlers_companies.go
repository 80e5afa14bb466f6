package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/workflow"
	"github.com/gin-gonic/gin"
)

func listCompaniesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}

		companies, err := models.GetAllCompanies(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, companies)
	}
}

func createCompanyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.Authorize(ctx, workflow.OpCreateCompany); err != nil {
			respondError(c, err)
			return
		}

		var input models.NewCompany
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		company, err := models.CreateCompany(ctx, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, company)
	}
}

func deleteCompanyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := resolveIdentity(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := workflow.Authorize(ctx, workflow.OpDeleteCompany); err != nil {
			respondError(c, err)
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}

		if err := models.DeleteCompany(ctx, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
	}
}
