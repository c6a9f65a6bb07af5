package Controllers

import (
	"errors"
	"log"
	"net/http"

	"ErpClinico/Models"
	"ErpClinico/Utils/Token"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

func CurrentUser(c *gin.Context) {
	user_id, err := Token.ExtractTokenID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := Models.GetUserByID(user_id)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var output struct {
		ID          uint   `json:"ID"`
		Username    string `json:"username"`
		Permission  int    `json:"permission"`
		TherapistID uint   `json:"therapist_id"`
	}
	output.ID = user_id
	output.Username = user.Username
	output.Permission = user.Permission
	if user.Permission == Models.PermissionTherapist {
		if therapist, err := Models.GetTherapistByUserID(user.ID); err == nil {
			output.TherapistID = therapist.ID
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": output})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, token, err := Models.LoginCheck(input.Username, input.Password)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username or password is incorrect."})
		return
	}

	user, _ := Models.GetUserByID(uid)

	if user.IsFrozen {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User Frozen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login Successful", "jwt": token, "permission": user.Permission})

}

type RegisterInput struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Permission int    `json:"permission"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := Models.User{}

	user.Username = input.Username
	user.Password = input.Password
	user.Permission = input.Permission
	_, err := user.SaveUser()

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "validated"})
}

func SaveFCM(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	deviceToken := Models.DeviceToken{UserID: user_id, Value: input.Token}
	if err := Models.DB.Save(&deviceToken).Error; err != nil {
		log.Println(err)
	}
	c.JSON(http.StatusOK, nil)
}

// RegisterTherapist creates the login account and the therapist profile in
// one transaction so a failed profile insert does not leave an orphan user.
func RegisterTherapist(c *gin.Context) {
	var input struct {
		Username  string `json:"username" binding:"required"`
		Password  string `json:"password" binding:"required"`
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Specialty string `json:"specialty" binding:"required"`
	}
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		log.Println(err)
		c.String(http.StatusBadRequest, "Bad Request")
		c.Abort()
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	user := Models.User{Username: input.Username, Password: input.Password, Permission: Models.PermissionTherapist}
	if err := user.BeforeSave(); err != nil {
		tx.Rollback()
		c.String(http.StatusBadRequest, "Failed To Register User")
		return
	}
	if err := tx.Create(&user).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.String(http.StatusBadRequest, "Failed To Register User")
		return
	}

	name := input.Name
	if name == "" {
		name = input.Username
	}
	therapist := Models.Therapist{
		UserID:    user.ID,
		Name:      name,
		Phone:     input.Phone,
		Specialty: input.Specialty,
		IsActive:  true,
	}
	if err := tx.Create(&therapist).Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create therapist profile"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println(err)
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registered Successfully"})
}

func FreezeTherapist(c *gin.Context) {
	var input struct {
		ID uint `json:"id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var therapist Models.Therapist
	if err := Models.DB.Where("id = ?", input.ID).First(&therapist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Therapist not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve therapist"})
		}
		return
	}

	var user Models.User
	if err := Models.DB.Where("id = ?", therapist.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Associated user not found"})
		return
	}

	user.ChangeState()
	therapist.IsActive = !user.IsFrozen

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if err := tx.Save(&therapist).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update therapist"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Therapist state updated"})
}
