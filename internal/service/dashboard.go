package service

import (
	"EmployeeManager/internal/repo"
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	recentWindow  = 90 * 24 * time.Hour
	monthlyWindow = 365 * 24 * time.Hour
)

// overflowBucket принимает все возрасты вне [20, 45).
const overflowBucket = "45+"

var ageBoundaries = []int{20, 25, 30, 35, 40, 45}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type SalaryStats struct {
	AvgSalary    float64 `json:"avg_salary"`
	MinSalary    int64   `json:"min_salary"`
	MaxSalary    int64   `json:"max_salary"`
	TotalPayroll int64   `json:"total_payroll"`
}

// AgeBucket — корзина по нижней границе возраста.
type AgeBucket struct {
	Bucket    string   `json:"bucket"`
	Count     int64    `json:"count"`
	AvgSalary *float64 `json:"avg_salary"`
}

type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// DashboardStats — сводка по всей коллекции на момент вызова.
type DashboardStats struct {
	TotalEmployees         int64             `json:"total_employees"`
	RecentEmployees        int64             `json:"recent_employees"`
	DepartmentDistribution map[string]int64  `json:"department_distribution"`
	Departments            []DepartmentCount `json:"departments"`
	SalaryStats            SalaryStats       `json:"salary_stats"`
	AgeDemographics        []AgeBucket       `json:"age_demographics"`
	StatusDistribution     map[string]int64  `json:"status_distribution"`
	MonthlyAdditions       []MonthlyCount    `json:"monthly_additions"`
}

// DashboardService считает агрегаты; результат не кешируется.
type DashboardService struct {
	repo repo.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(r repo.DashboardRepository) *DashboardService {
	return &DashboardService{repo: r, now: utcNow}
}

// Stats читает хранилище заново при каждом вызове. Запросы независимы и выполняются параллельно.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	out := &DashboardStats{}

	var (
		depts    []repo.GroupCount
		statuses []repo.GroupCount
		salary   repo.SalaryAggregate
		ages     []repo.AgeSalary
		created  []time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalEmployees, err = s.repo.Count(gctx)
		return wrap("count employees", err)
	})
	g.Go(func() (err error) {
		out.RecentEmployees, err = s.repo.CountCreatedSince(gctx, now.Add(-recentWindow))
		return wrap("count recent employees", err)
	})
	g.Go(func() (err error) {
		depts, err = s.repo.CountByDepartment(gctx)
		return wrap("department distribution", err)
	})
	g.Go(func() (err error) {
		statuses, err = s.repo.CountByStatus(gctx)
		return wrap("status distribution", err)
	})
	g.Go(func() (err error) {
		salary, err = s.repo.SalaryStats(gctx)
		return wrap("salary stats", err)
	})
	g.Go(func() (err error) {
		ages, err = s.repo.AgeSalaries(gctx)
		return wrap("age demographics", err)
	})
	g.Go(func() (err error) {
		created, err = s.repo.CreatedSince(gctx, now.Add(-monthlyWindow))
		return wrap("monthly additions", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Departments = make([]DepartmentCount, 0, len(depts))
	out.DepartmentDistribution = make(map[string]int64, len(depts))
	for _, d := range depts {
		out.Departments = append(out.Departments, DepartmentCount{Department: d.Key, Count: d.Count})
		out.DepartmentDistribution[d.Key] = d.Count
	}

	out.StatusDistribution = make(map[string]int64, len(statuses))
	for _, st := range statuses {
		key := st.Key
		if key == "" {
			key = "unknown"
		}
		out.StatusDistribution[key] += st.Count
	}

	out.SalaryStats = SalaryStats{
		AvgSalary:    salary.Avg,
		MinSalary:    salary.Min,
		MaxSalary:    salary.Max,
		TotalPayroll: salary.Total,
	}
	out.AgeDemographics = ageBuckets(ages)
	out.MonthlyAdditions = monthlyAdditions(created)
	return out, nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// bucketLabel возвращает метку корзины для возраста.
func bucketLabel(age int) string {
	for i := 0; i < len(ageBoundaries)-1; i++ {
		if age >= ageBoundaries[i] && age < ageBoundaries[i+1] {
			return strconv.Itoa(ageBoundaries[i])
		}
	}
	return overflowBucket
}

// ageBuckets группирует возрасты; пустые корзины не выводятся.
func ageBuckets(rows []repo.AgeSalary) []AgeBucket {
	type acc struct {
		count     int64
		salaries  int64
		salarySum float64
	}
	byLabel := map[string]*acc{}
	for _, r := range rows {
		label := bucketLabel(r.Age)
		a := byLabel[label]
		if a == nil {
			a = &acc{}
			byLabel[label] = a
		}
		a.count++
		if r.Salary != nil {
			a.salaries++
			a.salarySum += float64(*r.Salary)
		}
	}

	labels := make([]string, 0, len(ageBoundaries))
	for _, b := range ageBoundaries[:len(ageBoundaries)-1] {
		labels = append(labels, strconv.Itoa(b))
	}
	labels = append(labels, overflowBucket)

	out := make([]AgeBucket, 0, len(byLabel))
	for _, label := range labels {
		a := byLabel[label]
		if a == nil {
			continue
		}
		b := AgeBucket{Bucket: label, Count: a.count}
		if a.salaries > 0 {
			avg := a.salarySum / float64(a.salaries)
			b.AvgSalary = &avg
		}
		out = append(out, b)
	}
	return out
}

// monthlyAdditions группирует даты создания по (год, месяц) в порядке возрастания.
func monthlyAdditions(created []time.Time) []MonthlyCount {
	type ym struct{ y, m int }
	counts := map[ym]int64{}
	for _, t := range created {
		t = t.UTC()
		counts[ym{t.Year(), int(t.Month())}]++
	}
	out := make([]MonthlyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, MonthlyCount{Year: k.y, Month: k.m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
