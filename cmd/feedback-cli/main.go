package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/SaifHossain4/student-feedback-dashboard/internal/client"
	"github.com/SaifHossain4/student-feedback-dashboard/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	session := client.NewSession(client.New(cfg.Client.APIBaseURL))
	session.Load()

	reader := bufio.NewReader(os.Stdin)

	for {
		printBoard(session)
		printMenu(session)
		fmt.Print("Choose: ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			session.Refresh()
		case "2":
			submit(reader, session)
		case "3":
			startEdit(reader, session)
		case "4":
			saveEdit(reader, session)
		case "5":
			session.CancelEdit()
		case "6":
			deleteFeedback(reader, session)
		case "7":
			dbCheck(cfg)
		case "0":
			fmt.Println("Bye.")
			os.Exit(0)
		default:
			fmt.Println("Invalid choice")
		}
	}
}

func printBoard(s *client.Session) {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("       STUDENT FEEDBACK DASHBOARD")
	fmt.Println("========================================")

	if len(s.Items) == 0 {
		fmt.Println("(no feedback yet)")
	}
	for _, item := range s.Items {
		marker := " "
		if s.Edit.Active && s.Edit.ID == item.ID {
			marker = "*"
		}
		fmt.Printf("%s #%d  %d/5  %s\n", marker, item.ID, item.Rating, item.Comment)
		fmt.Printf("        %s\n", item.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}

	if s.Edit.Active {
		fmt.Printf("\nEditing feedback #%d (rating=%d, comment=%q)\n", s.Edit.ID, s.Edit.Rating, s.Edit.Comment)
	}
	if s.ErrMsg != "" {
		fmt.Printf("\n! %s\n", s.ErrMsg)
	}
}

func printMenu(s *client.Session) {
	fmt.Println()
	fmt.Println("1. Refresh list")
	fmt.Println("2. Submit feedback")
	fmt.Println("3. Edit feedback")
	if s.Edit.Active {
		fmt.Println("4. Save edit")
		fmt.Println("5. Cancel edit")
	}
	fmt.Println("6. Delete feedback")
	fmt.Println("7. Check API/database")
	fmt.Println("0. Exit")
	fmt.Println()
}

func submit(reader *bufio.Reader, s *client.Session) {
	fmt.Printf("Rating 1-5 [%d]: ", s.Form.Rating)
	if rating, ok := readInt(reader); ok {
		s.Form.Rating = rating
	}
	fmt.Print("Comment: ")
	comment, _ := reader.ReadString('\n')
	s.Form.Comment = strings.TrimRight(comment, "\n")
	s.Submit()
}

func startEdit(reader *bufio.Reader, s *client.Session) {
	fmt.Print("Feedback id to edit: ")
	id, ok := readInt(reader)
	if !ok {
		fmt.Println("Invalid id")
		return
	}
	s.StartEdit(uint64(id))
}

func saveEdit(reader *bufio.Reader, s *client.Session) {
	if !s.Edit.Active {
		fmt.Println("Nothing is being edited")
		return
	}
	fmt.Printf("Rating 1-5 [%d]: ", s.Edit.Rating)
	if rating, ok := readInt(reader); ok {
		s.Edit.Rating = rating
	}
	fmt.Printf("Comment [%s]: ", s.Edit.Comment)
	comment, _ := reader.ReadString('\n')
	if comment = strings.TrimRight(comment, "\n"); comment != "" {
		s.Edit.Comment = comment
	}
	s.SaveEdit()
}

func deleteFeedback(reader *bufio.Reader, s *client.Session) {
	fmt.Print("Feedback id to delete: ")
	id, ok := readInt(reader)
	if !ok {
		fmt.Println("Invalid id")
		return
	}
	s.Delete(uint64(id))
}

func dbCheck(cfg *config.Config) {
	now, err := client.New(cfg.Client.APIBaseURL).DBCheck()
	if err != nil {
		fmt.Printf("db-check failed: %v\n", err)
		return
	}
	fmt.Printf("API and database reachable, store time: %s\n", now.Local().Format("2006-01-02 15:04:05"))
}

func readInt(reader *bufio.Reader) (int, bool) {
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, false
	}
	return n, true
}
