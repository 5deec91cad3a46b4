package service

import (
	"context"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/dto"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"
	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlmacenService interface {
	CrearItem(ctx context.Context, req dto.CrearItemAlmacenRequest) (*model.AlmacenItem, error)
	ActualizarItem(ctx context.Context, id uuid.UUID, req dto.ActualizarItemAlmacenRequest) (*model.AlmacenItem, error)
	ObtenerItem(ctx context.Context, id uuid.UUID) (*model.AlmacenItem, error)
	ListarItems(ctx context.Context, soloActivos bool) ([]model.AlmacenItem, error)
	// StockBajo lists active items at or below their minimum stock.
	StockBajo(ctx context.Context) ([]model.AlmacenItem, error)
	// RegistrarEntrada receives stock, optionally refreshing the supplier
	// cost with the received unit value.
	RegistrarEntrada(ctx context.Context, itemID uuid.UUID, usuario string, req dto.EntradaAlmacenRequest) (*model.AlmacenItem, error)
	Movimientos(ctx context.Context, itemID uuid.UUID) ([]model.MovimientoAlmacen, error)
}

type almacenService struct {
	repo        repository.AlmacenRepository
	proveedores repository.ProveedorRepository
}

func NewAlmacenService(repo repository.AlmacenRepository, proveedores repository.ProveedorRepository) AlmacenService {
	return &almacenService{repo: repo, proveedores: proveedores}
}

func (s *almacenService) CrearItem(ctx context.Context, req dto.CrearItemAlmacenRequest) (*model.AlmacenItem, error) {
	item := &model.AlmacenItem{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		Categoria:      req.Categoria,
		Unidad:         "unidad",
		StockMinimo:    req.StockMinimo,
		ValorProveedor: req.ValorProveedor,
		ValorTaller:    req.ValorTaller,
		Activo:         true,
	}
	if req.Unidad != nil {
		item.Unidad = *req.Unidad
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.Validation("proveedor_id inválido")
		}
		if _, err := s.proveedores.FindByID(ctx, pid); err != nil {
			return nil, apierror.NotFound("proveedor %s no encontrado", pid)
		}
		item.ProveedorID = &pid
	}
	if item.ValorTaller.LessThan(item.ValorProveedor) {
		return nil, apierror.Validation("el valor taller no puede ser menor que el valor proveedor")
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *almacenService) ActualizarItem(ctx context.Context, id uuid.UUID, req dto.ActualizarItemAlmacenRequest) (*model.AlmacenItem, error) {
	item, err := s.ObtenerItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		item.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		item.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		item.Categoria = req.Categoria
	}
	if req.StockMinimo != nil {
		item.StockMinimo = *req.StockMinimo
	}
	if req.ValorProveedor != nil {
		item.ValorProveedor = *req.ValorProveedor
	}
	if req.ValorTaller != nil {
		item.ValorTaller = *req.ValorTaller
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.Validation("proveedor_id inválido")
		}
		if _, err := s.proveedores.FindByID(ctx, pid); err != nil {
			return nil, apierror.NotFound("proveedor %s no encontrado", pid)
		}
		item.ProveedorID = &pid
	}
	if req.Activo != nil {
		item.Activo = *req.Activo
	}
	if item.ValorTaller.LessThan(item.ValorProveedor) {
		return nil, apierror.Validation("el valor taller no puede ser menor que el valor proveedor")
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *almacenService) ObtenerItem(ctx context.Context, id uuid.UUID) (*model.AlmacenItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("insumo %s no encontrado", id)
	}
	return item, nil
}

func (s *almacenService) ListarItems(ctx context.Context, soloActivos bool) ([]model.AlmacenItem, error) {
	return s.repo.List(ctx, soloActivos)
}

func (s *almacenService) StockBajo(ctx context.Context) ([]model.AlmacenItem, error) {
	items, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	bajos := make([]model.AlmacenItem, 0)
	for _, item := range items {
		if item.StockActual.LessThanOrEqual(item.StockMinimo) {
			bajos = append(bajos, item)
		}
	}
	return bajos, nil
}

func (s *almacenService) RegistrarEntrada(ctx context.Context, itemID uuid.UUID, usuario string, req dto.EntradaAlmacenRequest) (*model.AlmacenItem, error) {
	if !req.Cantidad.IsPositive() {
		return nil, apierror.Validation("la cantidad debe ser mayor que cero")
	}
	item, err := s.ObtenerItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.Validation("proveedor_id inválido")
		}
		proveedorID = &pid
	} else {
		proveedorID = item.ProveedorID
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item.StockActual = item.StockActual.Add(req.Cantidad)
		if req.ValorUnitario != nil {
			item.ValorProveedor = *req.ValorUnitario
		}
		if err := s.repo.SaveTx(tx, item); err != nil {
			return err
		}
		entrada := &model.MovimientoAlmacen{
			ItemID:        item.ID,
			ProveedorID:   proveedorID,
			Tipo:          "entrada",
			Cantidad:      req.Cantidad,
			ValorUnitario: req.ValorUnitario,
			Observaciones: req.Observaciones,
		}
		return s.repo.CreateMovimientoTx(tx, entrada)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *almacenService) Movimientos(ctx context.Context, itemID uuid.UUID) ([]model.MovimientoAlmacen, error) {
	if _, err := s.ObtenerItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListMovimientos(ctx, itemID)
}
