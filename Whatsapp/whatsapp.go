package Whatsapp

import (
	"ErpClinico/Constants"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	whatsapp_chatbot_golang "github.com/green-api/whatsapp-chatbot-golang"
)

// Listen attaches the inbound bot so patient replies to reminders are at
// least visible in the logs instead of disappearing.
func Listen() {
	instanceID := os.Getenv("GREEN_API_INSTANCE")
	instanceToken := os.Getenv("GREEN_API_TOKEN")
	if instanceID == "" || instanceToken == "" {
		log.Println("Green API credentials not set, inbound WhatsApp listener disabled")
		return
	}

	bot := whatsapp_chatbot_golang.NewBot(instanceID, instanceToken)

	bot.SetStartScene(StartScene{})

	bot.StartReceivingNotifications()
}

type StartScene struct {
}

func (s StartScene) Start(bot *whatsapp_chatbot_golang.Bot) {
	bot.IncomingMessageHandler(func(message *whatsapp_chatbot_golang.Notification) {
		text, _ := message.Text()
		log.Println("WhatsApp reply:", text)
	})
}

func CheckLogin(c *gin.Context) {
	client := &http.Client{}
	method := "GET"

	url := Constants.WhatsappGoService + "/app/devices"
	req, err := http.NewRequest(method, url, nil)

	if err != nil {
		fmt.Println(err)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		fmt.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "WhatsApp service unreachable"})
		return
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
		return
	}
	var output struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Results []struct {
			Name   string `json:"name"`
			Device string `json:"device"`
		}
	}
	if err = json.Unmarshal(body, &output); err != nil {
		log.Println(err)
		return
	}

	if len(output.Results) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Not Logged In"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged In"})
}

func GetQRCode(c *gin.Context) {
	client := &http.Client{}
	method := "GET"

	urlLogin := Constants.WhatsappGoService + "/app/login"
	req, err := http.NewRequest(method, urlLogin, nil)

	if err != nil {
		fmt.Println(err)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		fmt.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "WhatsApp service unreachable"})
		return
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
	}

	var output struct {
		Results struct {
			QRLink string `json:"qr_link"`
		} `json:"results"`
	}

	if err = json.Unmarshal(body, &output); err != nil {
		log.Println(err)
	}

	req, err = http.NewRequest(method, output.Results.QRLink, nil)

	if err != nil {
		fmt.Println(err)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err = client.Do(req)
	if err != nil {
		fmt.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "WhatsApp service unreachable"})
		return
	}
	defer res.Body.Close()

	body, err = io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
	}
	c.Header("Content-Disposition", "attachment; filename=qr.png")
	c.Data(http.StatusOK, "application/octet-stream", body)
}

func SendMessage(phone, message string) error {
	client := &http.Client{}
	method := "POST"

	urlSend := Constants.WhatsappGoService + "/send/message"
	payload := struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}{Phone: phone, Message: message}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, urlSend, bytes.NewBuffer(data))

	if err != nil {
		fmt.Println(err)
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		fmt.Println(err)
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
		return err
	}
	log.Println("WhatsApp response:", string(body))
	return nil
}
