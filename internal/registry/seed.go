package registry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Spok95/gym-crm/internal/domain/memberships"
)

// Демо-данные для пустой установки. В рабочем хранилище посев не запускается
// никогда: Store проверяет, что таблица members пуста.

var seedAvatars = []string{"👨", "👩", "🧑", "👨‍💼", "👩‍💼", "🧔", "👨‍🦱", "👩‍🦰", "👨‍🦳", "👩‍🦳"}

var seedFirstNames = []string{
	"Raj", "Priya", "Amit", "Sneha", "Vikram", "Anjali", "Rahul", "Divya",
	"Arjun", "Kavya", "Karthik", "Meera", "Suresh", "Lakshmi", "Arun",
}

var seedLastNames = []string{
	"Kumar", "Sharma", "Patel", "Singh", "Reddy", "Nair", "Iyer", "Gupta",
	"Rao", "Joshi", "Mehta", "Shah", "Pillai", "Menon", "Agarwal",
}

var seedNotes = []string{"Regular member", "Morning batch", "Evening batch", ""}

// seedUnit заводит n участников и по одному действующему абонементу на каждого:
// ~20% уже истёкших, ~20% истекающих в ближайшие 15 дней, остальные со стартом
// 0–6 месяцев назад и end = start + срок плана.
func seedUnit(ctx context.Context, repo *memberships.Repo, n int) error {
	plans, err := repo.ListPlans(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return fmt.Errorf("no plans seeded")
	}

	today := time.Now()
	for i := 0; i < n; i++ {
		m := &memberships.Member{
			Name:   seedFirstNames[rand.Intn(len(seedFirstNames))] + " " + seedLastNames[rand.Intn(len(seedLastNames))],
			Phone:  fmt.Sprintf("+91%d", 7000000000+int64(i)*111111111), // последовательные, без коллизий
			Email:  fmt.Sprintf("member%d@email.com", i),
			Gender: []string{"Male", "Female"}[rand.Intn(2)],
			DOB:    time.Date(1985+rand.Intn(16), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC).Format(memberships.DateLayout),
			Avatar: seedAvatars[rand.Intn(len(seedAvatars))],
		}
		memberID, err := repo.CreateMember(ctx, m)
		if err != nil {
			return err
		}

		p := plans[rand.Intn(len(plans))]
		start := today.AddDate(0, -rand.Intn(7), 0)
		end := start.AddDate(0, p.DurationMonths, 0)
		switch r := rand.Float64(); {
		case r < 0.2: // уже истёк
			start = today.AddDate(0, -(p.DurationMonths+2), 0)
			end = today.AddDate(0, -2, 0)
		case r < 0.4: // истекает в ближайшие 15 дней
			end = today.AddDate(0, 0, 15)
			start = end.AddDate(0, -p.DurationMonths, 0)
		}

		notes := seedNotes[rand.Intn(len(seedNotes))]
		if err := repo.InsertSubscriptionRaw(ctx, memberID, p.ID, start, end, notes); err != nil {
			return err
		}
	}
	return nil
}
