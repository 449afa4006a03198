package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"klubnika/config"
	"klubnika/database"
	"klubnika/models"
	"klubnika/reports"
)

type AdminController struct {
	JWTSecret string
	Admin     config.Admin
}

func (a *AdminController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if input.Username != a.Admin.Username || input.Password != a.Admin.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  "admin_user",
		"isAdmin": true,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(a.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// countedOrderFilter is the canonical definition of an order that
// counts toward revenue: not cancelled (case-insensitive), and cash
// orders only once they have moved past Pending.
func countedOrderFilter() bson.M {
	return bson.M{
		"$and": []bson.M{
			{"status": bson.M{"$not": primitive.Regex{Pattern: "cancelled", Options: "i"}}},
			{"$nor": []bson.M{
				{
					"paymentMethod": primitive.Regex{Pattern: "Cash", Options: "i"},
					"status":        models.StatusPending,
				},
			}},
		},
	}
}

// InvoiceStats groups counted orders by calendar month.
func (a *AdminController) InvoiceStats(c *gin.Context) {
	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": countedOrderFilter()},
		{"$group": bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"totalOrders":  bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": "$totalAmount"},
		}},
		{"$sort": bson.D{{Key: "_id.year", Value: -1}, {Key: "_id.month", Value: -1}}},
	}

	cursor, err := database.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice stats"})
		return
	}

	stats := []bson.M{}
	if err := cursor.All(ctx, &stats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MonthlyReport returns one month's counted orders with the customer
// block and a reconciled financial breakdown for the spreadsheet
// export. Reconciled values are display-only and never written back.
func (a *AdminController) MonthlyReport(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year and Month are required"})
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	filter := countedOrderFilter()
	filter["createdAt"] = bson.M{"$gte": start, "$lt": end}

	ctx, cancel := reqCtx(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report data"})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report data"})
		return
	}

	resp := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		row := orderWithUser(ctx, order)
		row["financials"] = reports.Reconcile(order)
		resp = append(resp, row)
	}
	c.JSON(http.StatusOK, resp)
}
