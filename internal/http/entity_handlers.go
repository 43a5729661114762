package http

import (
	"net/http"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/http/middleware"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type JobHandler struct {
	service domain.JobService
	logger  logger.Logger
}

func NewJobHandler(service domain.JobService, logger logger.Logger) *JobHandler {
	return &JobHandler{service: service, logger: logger}
}

func (h *JobHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	endpoints := &resourceEndpoints[domain.Job, domain.CreateJobRequest, domain.UpdateJobRequest]{
		name:   "jobs",
		entity: "job",
		logger: h.logger,
		create: h.service.CreateJob,
		get:    h.service.GetJob,
		list:   h.service.ListJobs,
		update: h.service.UpdateJob,
		remove: h.service.DeleteJob,
	}
	endpoints.register(mux, auth.RequireTenant())
}

type PayrollHandler struct {
	service domain.PayrollService
	logger  logger.Logger
}

func NewPayrollHandler(service domain.PayrollService, logger logger.Logger) *PayrollHandler {
	return &PayrollHandler{service: service, logger: logger}
}

func (h *PayrollHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	endpoints := &resourceEndpoints[domain.Payroll, domain.CreatePayrollRequest, domain.UpdatePayrollRequest]{
		name:   "payrolls",
		entity: "payroll",
		logger: h.logger,
		create: h.service.CreatePayroll,
		get:    h.service.GetPayroll,
		list:   h.service.ListPayrolls,
		update: h.service.UpdatePayroll,
		remove: h.service.DeletePayroll,
	}
	endpoints.register(mux, auth.RequireTenant())
}

type EmployeeHandler struct {
	service domain.EmployeeService
	logger  logger.Logger
}

func NewEmployeeHandler(service domain.EmployeeService, logger logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: service, logger: logger}
}

func (h *EmployeeHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	endpoints := &resourceEndpoints[domain.Employee, domain.CreateEmployeeRequest, domain.UpdateEmployeeRequest]{
		name:   "employees",
		entity: "employee",
		logger: h.logger,
		create: h.service.CreateEmployee,
		get:    h.service.GetEmployee,
		list:   h.service.ListEmployees,
		update: h.service.UpdateEmployee,
		remove: h.service.DeleteEmployee,
	}
	endpoints.register(mux, auth.RequireTenant())
}

type ProductHandler struct {
	service domain.ProductService
	logger  logger.Logger
}

func NewProductHandler(service domain.ProductService, logger logger.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	endpoints := &resourceEndpoints[domain.Product, domain.CreateProductRequest, domain.UpdateProductRequest]{
		name:   "products",
		entity: "product",
		logger: h.logger,
		create: h.service.CreateProduct,
		get:    h.service.GetProduct,
		list:   h.service.ListProducts,
		update: h.service.UpdateProduct,
		remove: h.service.DeleteProduct,
	}
	endpoints.register(mux, auth.RequireTenant())
}

// OrderHandler serves orders. orders.update only moves the status; deleting
// an order leaves product stock untouched.
type OrderHandler struct {
	service domain.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service domain.OrderService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{service: service, logger: logger}
}

func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	endpoints := &resourceEndpoints[domain.Order, domain.CreateOrderRequest, domain.UpdateOrderRequest]{
		name:   "orders",
		entity: "order",
		logger: h.logger,
		create: h.service.CreateOrder,
		get:    h.service.GetOrder,
		list:   h.service.ListOrders,
		update: h.service.UpdateOrder,
		remove: h.service.DeleteOrder,
	}
	endpoints.register(mux, auth.RequireTenant())
}

type ExpenseHandler struct {
	service domain.ExpenseService
	logger  logger.Logger
}

func NewExpenseHandler(service domain.ExpenseService, logger logger.Logger) *ExpenseHandler {
	return &ExpenseHandler{service: service, logger: logger}
}

func (h *ExpenseHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	endpoints := &resourceEndpoints[domain.Expense, domain.CreateExpenseRequest, domain.UpdateExpenseRequest]{
		name:   "expenses",
		entity: "expense",
		logger: h.logger,
		create: h.service.CreateExpense,
		get:    h.service.GetExpense,
		list:   h.service.ListExpenses,
		update: h.service.UpdateExpense,
		remove: h.service.DeleteExpense,
	}
	endpoints.register(mux, auth.RequireTenant())
}

type RefundHandler struct {
	service domain.RefundService
	logger  logger.Logger
}

func NewRefundHandler(service domain.RefundService, logger logger.Logger) *RefundHandler {
	return &RefundHandler{service: service, logger: logger}
}

func (h *RefundHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	endpoints := &resourceEndpoints[domain.Refund, domain.CreateRefundRequest, domain.UpdateRefundRequest]{
		name:   "refunds",
		entity: "refund",
		logger: h.logger,
		create: h.service.CreateRefund,
		get:    h.service.GetRefund,
		list:   h.service.ListRefunds,
		update: h.service.UpdateRefund,
		remove: h.service.DeleteRefund,
	}
	endpoints.register(mux, auth.RequireTenant())
}
